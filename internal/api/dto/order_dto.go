package dto

// CheckoutItemReq 下单明细
type CheckoutItemReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutReq 下单请求
// 金额字段由客户端计算提交，服务端只做非负与总额一致性校验
type CheckoutReq struct {
	Items []CheckoutItemReq `json:"items"`

	CustomerName  string                 `json:"customer_name"`
	CustomerEmail string                 `json:"customer_email"`
	CustomerPhone string                 `json:"customer_phone"`
	ShippingAddr  map[string]interface{} `json:"shipping_address"`

	SubtotalAmount int64  `json:"subtotal_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	TaxAmount      int64  `json:"tax_amount"`
	ShippingAmount int64  `json:"shipping_amount"`
	TotalAmount    int64  `json:"total_amount"`
	Currency       string `json:"currency"`

	CouponCode string `json:"coupon_code"`
	Notes      string `json:"notes"`

	// 下单成功后是否清空购物车
	ClearCart bool `json:"clear_cart"`
}

// UpdateOrderReq 更新订单请求（部分更新）
type UpdateOrderReq struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`

	SubtotalAmount *int64 `json:"subtotal_amount,omitempty"`
	DiscountAmount *int64 `json:"discount_amount,omitempty"`
	TaxAmount      *int64 `json:"tax_amount,omitempty"`
	ShippingAmount *int64 `json:"shipping_amount,omitempty"`
	TotalAmount    *int64 `json:"total_amount,omitempty"`

	TrackingNumber *string `json:"tracking_number,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ConfirmPaymentReq 支付回调确认请求
type ConfirmPaymentReq struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}
