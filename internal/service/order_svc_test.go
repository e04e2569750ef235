package service

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// fakeGateway 可控的假支付网关
type fakeGateway struct {
	orderID   string
	createErr error
	validSig  string
	calls     int
}

func (g *fakeGateway) CreateOrder(_ context.Context, _ string, _ int64, _ string) (string, error) {
	g.calls++
	if g.createErr != nil {
		return "", g.createErr
	}
	return g.orderID, nil
}

func (g *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == g.validSig
}

type orderTestEnv struct {
	db      *gorm.DB
	svc     *OrderService
	gateway *fakeGateway
}

func setupOrderTest(t *testing.T) *orderTestEnv {
	db := setupTestDB(t)
	gateway := &fakeGateway{orderID: "gw_order_123", validSig: "good-signature"}
	couponSvc := NewCouponService(repository.NewCouponRepository(db))
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCouponRepository(db),
		repository.NewCartRepository(db),
		couponSvc,
		gateway,
	)
	return &orderTestEnv{db: db, svc: svc, gateway: gateway}
}

func TestOrderService_Checkout(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-1", 2000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	order, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 3}},
		CustomerEmail:  "buyer@example.com",
		SubtotalAmount: 6000,
		TotalAmount:    6000,
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	if !strings.HasPrefix(order.OrderNumber, "GS-") {
		t.Errorf("order_number = %s, want GS- 前缀", order.OrderNumber)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("明细行数 = %d, want 1", len(order.Items))
	}
	// 明细快照当前单价和 SKU
	if order.Items[0].UnitAmount != 2000 || order.Items[0].ProductSKU != "ORD-1" {
		t.Errorf("明细快照不对: %+v", order.Items[0])
	}

	// 库存已扣
	var fresh model.Product
	env.db.First(&fresh, product.ID)
	if fresh.StockQuantity != 7 {
		t.Errorf("stock = %d, want 7", fresh.StockQuantity)
	}

	// 网关登记成功后回填 gateway_order_id
	if order.GatewayOrderID != "gw_order_123" {
		t.Errorf("gateway_order_id = %s", order.GatewayOrderID)
	}
	if env.gateway.calls != 1 {
		t.Errorf("网关调用次数 = %d, want 1", env.gateway.calls)
	}
}

func TestOrderService_Checkout_Validation(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-2", 1000, 10)
	owner := repository.Owner{SessionID: "sess-a"}
	line := []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}}

	_, err := env.svc.Checkout(testCtx(), repository.Owner{}, dto.CheckoutReq{
		Items: line, CustomerEmail: "a@b.c", SubtotalAmount: 1000, TotalAmount: 1000,
	})
	wantCode(t, err, "MISSING_IDENTITY")

	_, err = env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		CustomerEmail: "a@b.c",
	})
	wantCode(t, err, "EMPTY_ORDER")

	_, err = env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items: line, SubtotalAmount: 1000, TotalAmount: 1000,
	})
	wantCode(t, err, "MISSING_EMAIL")

	_, err = env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items: line, CustomerEmail: "a@b.c", SubtotalAmount: -1, TotalAmount: -1,
	})
	wantCode(t, err, "INVALID_SUBTOTAL")

	// 总额对不上
	_, err = env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items: line, CustomerEmail: "a@b.c", SubtotalAmount: 1000, TotalAmount: 900,
	})
	wantCode(t, err, "TOTAL_MISMATCH")

	// 小计与服务端复算不一致
	_, err = env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items: line, CustomerEmail: "a@b.c", SubtotalAmount: 999, TotalAmount: 999,
	})
	wantCode(t, err, "INVALID_SUBTOTAL")
}

func TestOrderService_Checkout_OutOfStock(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-3", 1000, 2)
	owner := repository.Owner{SessionID: "sess-a"}

	_, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 3}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 3000,
		TotalAmount:    3000,
	})
	wantCode(t, err, "OUT_OF_STOCK")

	// 整单回滚，库存原样
	var fresh model.Product
	env.db.First(&fresh, product.ID)
	if fresh.StockQuantity != 2 {
		t.Errorf("stock = %d, want 2", fresh.StockQuantity)
	}
}

func TestOrderService_Checkout_WithCoupon(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-4", 5000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	coupon := &model.Coupon{
		Code: "TEN", DiscountType: model.DiscountTypePercentage, DiscountValue: 10,
		UsageLimit: 1, IsActive: true,
	}
	env.db.Create(coupon)

	// 折扣额与券面不符
	_, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 5000,
		DiscountAmount: 999,
		TotalAmount:    4001,
		CouponCode:     "TEN",
	})
	wantCode(t, err, "INVALID_DISCOUNT")

	order, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 5000,
		DiscountAmount: 500,
		TotalAmount:    4500,
		CouponCode:     "ten", // 大小写不敏感
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if order.CouponCode != "TEN" {
		t.Errorf("coupon_code = %s, want TEN", order.CouponCode)
	}

	// 核销已计数，二次使用被拒
	var fresh model.Coupon
	env.db.First(&fresh, coupon.ID)
	if fresh.UsedCount != 1 {
		t.Errorf("used_count = %d, want 1", fresh.UsedCount)
	}

	_, err = env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 5000,
		DiscountAmount: 500,
		TotalAmount:    4500,
		CouponCode:     "TEN",
	})
	wantCode(t, err, "COUPON_EXHAUSTED")
}

func TestOrderService_Checkout_DiscountWithoutCoupon(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-5", 1000, 10)

	_, err := env.svc.Checkout(testCtx(), repository.Owner{SessionID: "sess-a"}, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 1000,
		DiscountAmount: 100,
		TotalAmount:    900,
	})
	wantCode(t, err, "INVALID_DISCOUNT")
}

func TestOrderService_Cancel_Restocks(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-6", 5000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	coupon := &model.Coupon{
		Code: "BACK", DiscountType: model.DiscountTypeFixed, DiscountValue: 500,
		UsageLimit: 5, IsActive: true,
	}
	env.db.Create(coupon)

	order, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 4}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 20000,
		DiscountAmount: 500,
		TotalAmount:    19500,
		CouponCode:     "BACK",
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	cancelled, err := env.svc.Cancel(testCtx(), owner, false, order.ID)
	if err != nil {
		t.Fatalf("取消失败: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	// 库存回补、券次退回
	var freshProduct model.Product
	env.db.First(&freshProduct, product.ID)
	if freshProduct.StockQuantity != 10 {
		t.Errorf("stock = %d, want 10", freshProduct.StockQuantity)
	}
	var freshCoupon model.Coupon
	env.db.First(&freshCoupon, coupon.ID)
	if freshCoupon.UsedCount != 0 {
		t.Errorf("used_count = %d, want 0", freshCoupon.UsedCount)
	}

	// 已取消的订单不能再取消
	_, err = env.svc.Cancel(testCtx(), owner, false, order.ID)
	wantCode(t, err, "INVALID_STATUS_TRANSITION")
}

func TestOrderService_Update_StatusMachine(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-7", 1000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	order, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 1000,
		TotalAmount:    1000,
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// pending 不能直接 shipped
	_, err = env.svc.Update(testCtx(), order.ID, dto.UpdateOrderReq{Status: strPtr(model.OrderStatusShipped)})
	wantCode(t, err, "INVALID_STATUS_TRANSITION")

	_, err = env.svc.Update(testCtx(), order.ID, dto.UpdateOrderReq{Status: strPtr("teleported")})
	wantCode(t, err, "INVALID_STATUS")

	// pending → paid → processing → shipped
	for _, status := range []string{model.OrderStatusPaid, model.OrderStatusProcessing, model.OrderStatusShipped} {
		if _, err := env.svc.Update(testCtx(), order.ID, dto.UpdateOrderReq{Status: strPtr(status)}); err != nil {
			t.Fatalf("迁移到 %s 失败: %v", status, err)
		}
	}

	updated, err := env.svc.Update(testCtx(), order.ID, dto.UpdateOrderReq{
		Status:         strPtr(model.OrderStatusDelivered),
		TrackingNumber: strPtr("TRACK-9"),
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.ShippedAt == nil || updated.DeliveredAt == nil {
		t.Error("shipped_at / delivered_at 未落时间")
	}
	if updated.TrackingNumber != "TRACK-9" {
		t.Errorf("tracking_number = %s", updated.TrackingNumber)
	}
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-8", 1000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	order, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 1000,
		TotalAmount:    1000,
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// 验签失败
	_, err = env.svc.ConfirmPayment(testCtx(), order.ID, dto.ConfirmPaymentReq{
		GatewayOrderID:   "gw_order_123",
		GatewayPaymentID: "gw_pay_1",
		Signature:        "forged",
	})
	wantCode(t, err, "INVALID_SIGNATURE")

	// 网关单号不匹配
	_, err = env.svc.ConfirmPayment(testCtx(), order.ID, dto.ConfirmPaymentReq{
		GatewayOrderID:   "someone-else",
		GatewayPaymentID: "gw_pay_1",
		Signature:        "good-signature",
	})
	wantCode(t, err, "GATEWAY_MISMATCH")

	paid, err := env.svc.ConfirmPayment(testCtx(), order.ID, dto.ConfirmPaymentReq{
		GatewayOrderID:   "gw_order_123",
		GatewayPaymentID: "gw_pay_1",
		Signature:        "good-signature",
	})
	if err != nil {
		t.Fatalf("支付确认失败: %v", err)
	}
	if paid.PaymentStatus != model.PaymentStatusPaid || paid.Status != model.OrderStatusPaid {
		t.Errorf("status = %s/%s, want paid/paid", paid.Status, paid.PaymentStatus)
	}
	if paid.PaidAt == nil {
		t.Error("paid_at 未落时间")
	}

	// 重复回调幂等
	again, err := env.svc.ConfirmPayment(testCtx(), order.ID, dto.ConfirmPaymentReq{
		GatewayOrderID:   "gw_order_123",
		GatewayPaymentID: "gw_pay_1",
		Signature:        "forged",
	})
	if err != nil {
		t.Fatalf("重复回调应幂等: %v", err)
	}
	if again.PaymentStatus != model.PaymentStatusPaid {
		t.Errorf("payment_status = %s, want paid", again.PaymentStatus)
	}
}

func TestOrderService_OwnerScoping(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-9", 1000, 10)

	ownerA := repository.Owner{SessionID: "sess-a"}
	ownerB := repository.Owner{SessionID: "sess-b"}

	order, err := env.svc.Checkout(testCtx(), ownerA, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 1000,
		TotalAmount:    1000,
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// 非本人按不存在处理，管理员可见
	_, err = env.svc.Get(testCtx(), ownerB, false, order.ID)
	wantCode(t, err, "ORDER_NOT_FOUND")

	if _, err := env.svc.Get(testCtx(), ownerB, true, order.ID); err != nil {
		t.Fatalf("管理员查询失败: %v", err)
	}

	if _, err := env.svc.GetByNumber(testCtx(), ownerA, false, order.OrderNumber); err != nil {
		t.Fatalf("按单号查询失败: %v", err)
	}

	// 列表强制过滤到自己的归属
	ordersB, err := env.svc.List(testCtx(), ownerB, false, repository.OrderFilter{})
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if len(ordersB) != 0 {
		t.Errorf("他人可见订单数 = %d, want 0", len(ordersB))
	}
	ordersA, _ := env.svc.List(testCtx(), ownerA, false, repository.OrderFilter{})
	if len(ordersA) != 1 {
		t.Errorf("本人可见订单数 = %d, want 1", len(ordersA))
	}
}

func TestOrderService_Checkout_ClearsCart(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-10", 1000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	cartSvc := NewCartService(repository.NewCartRepository(env.db), repository.NewProductRepository(env.db))
	if _, err := cartSvc.Add(testCtx(), owner, dto.AddCartItemReq{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("加购失败: %v", err)
	}

	_, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
		Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
		CustomerEmail:  "a@b.c",
		SubtotalAmount: 1000,
		TotalAmount:    1000,
		ClearCart:      true,
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	items, _ := cartSvc.List(testCtx(), owner)
	if len(items) != 0 {
		t.Errorf("下单后购物车行数 = %d, want 0", len(items))
	}
}

func TestOrderService_Stats(t *testing.T) {
	env := setupOrderTest(t)
	product := seedProduct(t, env.db, "ORD-11", 1000, 10)
	owner := repository.Owner{SessionID: "sess-a"}

	for i := 0; i < 2; i++ {
		if _, err := env.svc.Checkout(testCtx(), owner, dto.CheckoutReq{
			Items:          []dto.CheckoutItemReq{{ProductID: product.ID, Quantity: 1}},
			CustomerEmail:  "a@b.c",
			SubtotalAmount: 1000,
			TotalAmount:    1000,
		}); err != nil {
			t.Fatalf("下单失败: %v", err)
		}
	}

	stats, err := env.svc.Stats(testCtx())
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if stats[model.OrderStatusPending] != 2 {
		t.Errorf("pending = %d, want 2", stats[model.OrderStatusPending])
	}
}
