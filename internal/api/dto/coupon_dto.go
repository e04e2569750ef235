package dto

// CreateCouponReq 创建优惠券请求
type CreateCouponReq struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiscountType  string `json:"discount_type"`  // percentage | fixed
	DiscountValue int64  `json:"discount_value"` // percentage: 0-100, fixed: 分

	MinOrderAmount int64 `json:"min_order_amount"`
	MaxDiscount    int64 `json:"max_discount"`

	ValidFrom  string `json:"valid_from"`  // RFC3339
	ValidUntil string `json:"valid_until"` // RFC3339

	UsageLimit int   `json:"usage_limit"`
	IsActive   *bool `json:"is_active"`
}

// UpdateCouponReq 更新优惠券请求（部分更新）
type UpdateCouponReq struct {
	Description   *string `json:"description,omitempty"`
	DiscountType  *string `json:"discount_type,omitempty"`
	DiscountValue *int64  `json:"discount_value,omitempty"`

	MinOrderAmount *int64 `json:"min_order_amount,omitempty"`
	MaxDiscount    *int64 `json:"max_discount,omitempty"`

	ValidFrom  *string `json:"valid_from,omitempty"`
	ValidUntil *string `json:"valid_until,omitempty"`

	UsageLimit *int  `json:"usage_limit,omitempty"`
	IsActive   *bool `json:"is_active,omitempty"`
}

// ValidateCouponReq 试算优惠券请求
type ValidateCouponReq struct {
	Code           string `json:"code"`
	SubtotalAmount int64  `json:"subtotal_amount"`
}

// CouponQuoteResp 试算结果
type CouponQuoteResp struct {
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	SubtotalAmount int64  `json:"subtotal_amount"`
	TotalAmount    int64  `json:"total_amount"`
}
