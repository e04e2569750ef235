package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// PaymentGateway 支付网关出站接口
type PaymentGateway interface {
	CreateOrder(ctx context.Context, orderNumber string, amount int64, currency string) (gatewayOrderID string, err error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

// OrderService 订单业务逻辑
// 下单走单事务：扣库存、核销券、落订单，任何一步失败整体回滚
type OrderService struct {
	db *gorm.DB

	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	CouponRepo  repository.CouponRepository
	CartRepo    repository.CartRepository
	CouponSvc   *CouponService
	Gateway     PaymentGateway
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	cartRepo repository.CartRepository,
	couponSvc *CouponService,
	gateway PaymentGateway,
) *OrderService {
	return &OrderService{
		db:          db,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		CouponRepo:  couponRepo,
		CartRepo:    cartRepo,
		CouponSvc:   couponSvc,
		Gateway:     gateway,
	}
}

// newOrderNumber 生成订单号：GS-日期-随机段
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("GS-%s-%s", now.Format("20060102"), suffix)
}

// Checkout 下单
// 金额字段由客户端提交，服务端按商品快照价和券面值复算并拒绝不一致的请求
func (s *OrderService) Checkout(ctx context.Context, owner repository.Owner, req dto.CheckoutReq) (*model.Order, error) {
	if !owner.Valid() {
		return nil, ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
	}
	if len(req.Items) == 0 {
		return nil, ErrBadRequest("EMPTY_ORDER", "order must contain at least one item")
	}
	if req.CustomerEmail == "" {
		return nil, ErrBadRequest("MISSING_EMAIL", "customer email is required")
	}
	if req.SubtotalAmount < 0 {
		return nil, ErrBadRequest("INVALID_SUBTOTAL", "subtotal must not be negative")
	}
	if req.DiscountAmount < 0 || req.TaxAmount < 0 || req.ShippingAmount < 0 || req.TotalAmount < 0 {
		return nil, ErrBadRequest("INVALID_AMOUNT", "money amounts must not be negative")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrBadRequest("INVALID_QUANTITY", "item quantity must be positive")
		}
	}
	if req.TotalAmount != req.SubtotalAmount-req.DiscountAmount+req.TaxAmount+req.ShippingAmount {
		return nil, ErrBadRequest("TOTAL_MISMATCH", "total does not match subtotal, discount, tax and shipping")
	}

	now := time.Now()
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	order := &model.Order{
		OrderNumber:     newOrderNumber(now),
		UserID:          owner.UserID,
		SessionID:       owner.SessionID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddr,
		SubtotalAmount:  req.SubtotalAmount,
		DiscountAmount:  req.DiscountAmount,
		TaxAmount:       req.TaxAmount,
		ShippingAmount:  req.ShippingAmount,
		TotalAmount:     req.TotalAmount,
		Currency:        currency,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		Notes:           req.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := s.ProductRepo.WithTx(tx)
		couponRepo := s.CouponRepo.WithTx(tx)
		orderRepo := s.OrderRepo.WithTx(tx)

		// 扣库存 + 快照明细
		var subtotal int64
		for _, line := range req.Items {
			product, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				if IsNotFound(err) {
					return ErrBadRequest("PRODUCT_NOT_FOUND", fmt.Sprintf("product %d not found", line.ProductID))
				}
				return err
			}
			if !product.IsActive {
				return ErrBadRequest("PRODUCT_INACTIVE", fmt.Sprintf("product %s is not available", product.Name))
			}

			rows, err := productRepo.DecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrBadRequest("OUT_OF_STOCK", fmt.Sprintf("insufficient stock for %s", product.Name))
			}

			lineTotal := product.PriceAmount * int64(line.Quantity)
			subtotal += lineTotal
			order.Items = append(order.Items, model.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductSKU:  product.SKU,
				UnitAmount:  product.PriceAmount,
				Quantity:    line.Quantity,
				TotalAmount: lineTotal,
			})
		}

		if subtotal != req.SubtotalAmount {
			return ErrBadRequest("INVALID_SUBTOTAL", "subtotal does not match current product prices")
		}

		// 优惠券：原子核销，用尽即拒单
		if req.CouponCode != "" {
			coupon, err := s.CouponSvc.resolveUsable(ctx, req.CouponCode, subtotal, now)
			if err != nil {
				return err
			}
			expected := coupon.DiscountFor(subtotal)
			if req.DiscountAmount != expected {
				return ErrBadRequest("INVALID_DISCOUNT", "discount does not match coupon value")
			}

			rows, err := couponRepo.Redeem(ctx, coupon.ID)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrBadRequest("COUPON_EXHAUSTED", "coupon usage limit reached")
			}
			order.CouponID = &coupon.ID
			order.CouponCode = coupon.Code
		} else if req.DiscountAmount != 0 {
			return ErrBadRequest("INVALID_DISCOUNT", "discount requires a coupon code")
		}

		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	// 网关下单失败不回滚本地订单，留待支付时重试
	if s.Gateway != nil {
		if gatewayOrderID, err := s.Gateway.CreateOrder(ctx, order.OrderNumber, order.TotalAmount, order.Currency); err == nil {
			order.GatewayOrderID = gatewayOrderID
			_ = s.OrderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
				"gateway_order_id": gatewayOrderID,
			})
		}
	}

	if req.ClearCart {
		_ = s.CartRepo.ClearOwner(ctx, owner)
	}

	return order, nil
}

// Get 按 ID 查订单，非管理员只能看自己的
func (s *OrderService) Get(ctx context.Context, owner repository.Owner, isAdmin bool, id int64) (*model.Order, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("ORDER_NOT_FOUND", "order not found")
		}
		return nil, err
	}
	if !isAdmin && !ownerMatches(owner, order.UserID, order.SessionID) {
		return nil, ErrNotFound("ORDER_NOT_FOUND", "order not found")
	}
	return order, nil
}

// GetByNumber 按订单号查订单
func (s *OrderService) GetByNumber(ctx context.Context, owner repository.Owner, isAdmin bool, orderNumber string) (*model.Order, error) {
	order, err := s.OrderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("ORDER_NOT_FOUND", "order not found")
		}
		return nil, err
	}
	if !isAdmin && !ownerMatches(owner, order.UserID, order.SessionID) {
		return nil, ErrNotFound("ORDER_NOT_FOUND", "order not found")
	}
	return order, nil
}

// List 订单列表，非管理员强制过滤到自己的归属
func (s *OrderService) List(ctx context.Context, owner repository.Owner, isAdmin bool, filter repository.OrderFilter) ([]model.Order, error) {
	if !isAdmin {
		if !owner.Valid() {
			return nil, ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
		}
		if owner.UserID != nil {
			filter.UserID = owner.UserID
			filter.SessionID = ""
		} else {
			filter.UserID = nil
			filter.SessionID = owner.SessionID
		}
	}
	return s.OrderRepo.List(ctx, filter)
}

// Update 管理员更新订单，状态只接受状态机允许的迁移
func (s *OrderService) Update(ctx context.Context, id int64, req dto.UpdateOrderReq) (*model.Order, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("ORDER_NOT_FOUND", "order not found")
		}
		return nil, err
	}

	now := time.Now()

	if req.Status != nil && *req.Status != order.Status {
		if !model.IsValidOrderStatus(*req.Status) {
			return nil, ErrBadRequest("INVALID_STATUS", "unknown order status")
		}
		if !model.CanTransitionOrderStatus(order.Status, *req.Status) {
			return nil, ErrBadRequest("INVALID_STATUS_TRANSITION",
				fmt.Sprintf("cannot transition order from %s to %s", order.Status, *req.Status))
		}
		if *req.Status == model.OrderStatusCancelled {
			return s.cancel(ctx, order)
		}
		order.Status = *req.Status
		switch *req.Status {
		case model.OrderStatusShipped:
			order.ShippedAt = &now
		case model.OrderStatusDelivered:
			order.DeliveredAt = &now
		}
	}

	if req.PaymentStatus != nil && *req.PaymentStatus != order.PaymentStatus {
		if !model.IsValidPaymentStatus(*req.PaymentStatus) {
			return nil, ErrBadRequest("INVALID_STATUS", "unknown payment status")
		}
		if !model.CanTransitionPaymentStatus(order.PaymentStatus, *req.PaymentStatus) {
			return nil, ErrBadRequest("INVALID_STATUS_TRANSITION",
				fmt.Sprintf("cannot transition payment from %s to %s", order.PaymentStatus, *req.PaymentStatus))
		}
		order.PaymentStatus = *req.PaymentStatus
		if *req.PaymentStatus == model.PaymentStatusPaid {
			order.PaidAt = &now
		}
	}

	if req.SubtotalAmount != nil {
		if *req.SubtotalAmount < 0 {
			return nil, ErrBadRequest("INVALID_SUBTOTAL", "subtotal must not be negative")
		}
		order.SubtotalAmount = *req.SubtotalAmount
	}
	if req.DiscountAmount != nil {
		order.DiscountAmount = *req.DiscountAmount
	}
	if req.TaxAmount != nil {
		order.TaxAmount = *req.TaxAmount
	}
	if req.ShippingAmount != nil {
		order.ShippingAmount = *req.ShippingAmount
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.TrackingNumber != nil {
		order.TrackingNumber = *req.TrackingNumber
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := s.OrderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel 取消订单：回补库存、退回券核销次数
func (s *OrderService) Cancel(ctx context.Context, owner repository.Owner, isAdmin bool, id int64) (*model.Order, error) {
	order, err := s.Get(ctx, owner, isAdmin, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, order)
}

func (s *OrderService) cancel(ctx context.Context, order *model.Order) (*model.Order, error) {
	if !model.CanTransitionOrderStatus(order.Status, model.OrderStatusCancelled) {
		return nil, ErrBadRequest("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("cannot cancel order in %s status", order.Status))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := s.ProductRepo.WithTx(tx)
		couponRepo := s.CouponRepo.WithTx(tx)
		orderRepo := s.OrderRepo.WithTx(tx)

		for _, item := range order.Items {
			if err := productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if order.CouponID != nil {
			if err := couponRepo.Release(ctx, *order.CouponID); err != nil {
				return err
			}
		}

		order.Status = model.OrderStatusCancelled
		if order.PaymentStatus == model.PaymentStatusPaid {
			order.PaymentStatus = model.PaymentStatusRefunded
		}
		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmPayment 支付回调：验签后置为已支付
// 重复回调幂等返回当前订单
func (s *OrderService) ConfirmPayment(ctx context.Context, id int64, req dto.ConfirmPaymentReq) (*model.Order, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("ORDER_NOT_FOUND", "order not found")
		}
		return nil, err
	}

	if order.PaymentStatus == model.PaymentStatusPaid {
		return order, nil
	}

	if order.GatewayOrderID != "" && order.GatewayOrderID != req.GatewayOrderID {
		return nil, ErrBadRequest("GATEWAY_MISMATCH", "gateway order does not match")
	}
	if s.Gateway != nil && !s.Gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		return nil, ErrBadRequest("INVALID_SIGNATURE", "payment signature verification failed")
	}
	if !model.CanTransitionPaymentStatus(order.PaymentStatus, model.PaymentStatusPaid) {
		return nil, ErrBadRequest("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("cannot mark %s payment as paid", order.PaymentStatus))
	}

	now := time.Now()
	order.PaymentStatus = model.PaymentStatusPaid
	order.GatewayPaymentID = req.GatewayPaymentID
	order.PaidAt = &now
	if model.CanTransitionOrderStatus(order.Status, model.OrderStatusPaid) {
		order.Status = model.OrderStatusPaid
	}

	if err := s.OrderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete 管理员删除订单，连带明细
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.OrderRepo.GetByID(ctx, id); err != nil {
		if IsNotFound(err) {
			return ErrNotFound("ORDER_NOT_FOUND", "order not found")
		}
		return err
	}
	return s.OrderRepo.Delete(ctx, id)
}

// Stats 按状态统计订单数
func (s *OrderService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.OrderRepo.CountByStatus(ctx)
}
