package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// 订单状态，只允许 orderTransitions 中列出的迁移
const (
	OrderStatusPending    = "pending"    // 待支付
	OrderStatusPaid       = "paid"       // 已支付
	OrderStatusProcessing = "processing" // 备货中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// 支付状态
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// orderTransitions 订单状态迁移表
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// paymentTransitions 支付状态迁移表
var paymentTransitions = map[string][]string{
	PaymentStatusPending:  {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:     {PaymentStatusRefunded},
	PaymentStatusFailed:   {PaymentStatusPending},
	PaymentStatusRefunded: {},
}

// CanTransitionOrderStatus 校验订单状态迁移是否合法
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionPaymentStatus 校验支付状态迁移是否合法
func CanTransitionPaymentStatus(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidOrderStatus 是否已知订单状态
func IsValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsValidPaymentStatus 是否已知支付状态
func IsValidPaymentStatus(s string) bool {
	_, ok := paymentTransitions[s]
	return ok
}

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	BaseModel
	OrderNumber string `gorm:"size:40;uniqueIndex;not null" json:"order_number"`
	UserID      *int64 `gorm:"index" json:"user_id"`
	SessionID   string `gorm:"size:64;index" json:"session_id"`

	// 收件人
	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerEmail string `gorm:"size:255" json:"customer_email"`
	CustomerPhone string `gorm:"size:30" json:"customer_phone"`

	// 收货地址（PostgreSQL JSONB）
	ShippingAddress datatypes.JSONMap `gorm:"type:jsonb" json:"shipping_address"`

	// 金额（分为单位存储）
	SubtotalAmount int64  `gorm:"not null" json:"subtotal_amount"`
	DiscountAmount int64  `gorm:"default:0" json:"discount_amount"`
	TaxAmount      int64  `gorm:"default:0" json:"tax_amount"`
	ShippingAmount int64  `gorm:"default:0" json:"shipping_amount"`
	TotalAmount    int64  `gorm:"not null" json:"total_amount"`
	Currency       string `gorm:"size:5;default:USD" json:"currency"`

	// 优惠券
	CouponID   *int64 `gorm:"index" json:"coupon_id"`
	CouponCode string `gorm:"size:50" json:"coupon_code"`

	// 状态机
	Status        string `gorm:"size:20;index;default:pending" json:"status"`
	PaymentStatus string `gorm:"size:20;index;default:pending" json:"payment_status"`

	// 支付网关
	GatewayOrderID   string     `gorm:"size:100;index" json:"gateway_order_id"`
	GatewayPaymentID string     `gorm:"size:100" json:"gateway_payment_id"`
	PaidAt           *time.Time `json:"paid_at"`

	// 发货
	TrackingNumber string     `gorm:"size:100" json:"tracking_number"`
	ShippedAt      *time.Time `json:"shipped_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`

	Notes string `gorm:"type:text" json:"notes"`

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细（下单时快照商品信息）
type OrderItem struct {
	BaseModel
	OrderID   int64  `gorm:"index;not null" json:"order_id"`
	Order     *Order `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ProductID int64  `gorm:"index;not null" json:"product_id"`

	// 快照字段
	ProductName string `gorm:"size:255" json:"product_name"`
	ProductSKU  string `gorm:"size:100" json:"product_sku"`
	UnitAmount  int64  `gorm:"not null" json:"unit_amount"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	TotalAmount int64  `gorm:"not null" json:"total_amount"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
