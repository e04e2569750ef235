package model

import "time"

// ==================== 折扣类型常量 ====================

const (
	DiscountTypePercentage = "percentage" // 百分比折扣
	DiscountTypeFixed      = "fixed"      // 固定金额折扣（分）
)

// Coupon 优惠券
// used_count 的递增走带条件的原子 UPDATE，不做读改写
type Coupon struct {
	BaseModel
	Code          string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description   string `gorm:"size:255" json:"description"`
	DiscountType  string `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue int64  `gorm:"not null" json:"discount_value"` // percentage: 0-100, fixed: 分

	MinOrderAmount int64 `gorm:"default:0" json:"min_order_amount"`
	MaxDiscount    int64 `gorm:"default:0" json:"max_discount"` // 百分比折扣封顶，0 表示不封顶

	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `gorm:"index" json:"valid_until"`

	UsageLimit int  `gorm:"default:0" json:"usage_limit"` // 0 表示不限次数
	UsedCount  int  `gorm:"default:0" json:"used_count"`
	IsActive   bool `gorm:"default:true" json:"is_active"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// IsWithinWindow 是否在有效期内
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	return true
}

// DiscountFor 计算订单小计可抵扣金额（分）
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	var discount int64
	switch c.DiscountType {
	case DiscountTypePercentage:
		discount = subtotal * c.DiscountValue / 100
		if c.MaxDiscount > 0 && discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
	case DiscountTypeFixed:
		discount = c.DiscountValue
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}
