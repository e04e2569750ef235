package service

import (
	"context"
	"strings"
	"time"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// CouponService 优惠券业务逻辑
type CouponService struct {
	CouponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{CouponRepo: couponRepo}
}

func parseTimePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, ErrBadRequest("INVALID_TIME", "time must be RFC3339 formatted")
	}
	return &t, nil
}

// validateDiscount 百分比折扣只接受 0-100
func validateDiscount(discountType string, discountValue int64) error {
	switch discountType {
	case model.DiscountTypePercentage:
		if discountValue < 0 || discountValue > 100 {
			return ErrBadRequest("INVALID_PERCENTAGE_VALUE", "percentage discount must be between 0 and 100")
		}
	case model.DiscountTypeFixed:
		if discountValue < 0 {
			return ErrBadRequest("INVALID_DISCOUNT_VALUE", "fixed discount must not be negative")
		}
	default:
		return ErrBadRequest("INVALID_DISCOUNT_TYPE", "discount type must be percentage or fixed")
	}
	return nil
}

// Create 创建优惠券
func (s *CouponService) Create(ctx context.Context, req dto.CreateCouponReq) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, ErrBadRequest("MISSING_CODE", "coupon code is required")
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	if _, err := s.CouponRepo.GetByCode(ctx, code); err == nil {
		return nil, ErrBadRequest("CODE_EXISTS", "coupon code already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	validFrom, err := parseTimePtr(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseTimePtr(req.ValidUntil)
	if err != nil {
		return nil, err
	}
	if validFrom != nil && validUntil != nil && validUntil.Before(*validFrom) {
		return nil, ErrBadRequest("INVALID_WINDOW", "valid_until must be after valid_from")
	}

	coupon := &model.Coupon{
		Code:           code,
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.CouponRepo.Create(ctx, coupon); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("CODE_EXISTS", "coupon code already exists")
		}
		return nil, err
	}
	return coupon, nil
}

// Get 按 ID 查优惠券
func (s *CouponService) Get(ctx context.Context, id int64) (*model.Coupon, error) {
	coupon, err := s.CouponRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("COUPON_NOT_FOUND", "coupon not found")
		}
		return nil, err
	}
	return coupon, nil
}

// Update 部分更新优惠券，code 不可改
func (s *CouponService) Update(ctx context.Context, id int64, req dto.UpdateCouponReq) (*model.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	discountType := coupon.DiscountType
	discountValue := coupon.DiscountValue
	if req.DiscountType != nil {
		discountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		discountValue = *req.DiscountValue
	}
	if err := validateDiscount(discountType, discountValue); err != nil {
		return nil, err
	}
	coupon.DiscountType = discountType
	coupon.DiscountValue = discountValue

	if req.Description != nil {
		coupon.Description = *req.Description
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}
	if req.MaxDiscount != nil {
		coupon.MaxDiscount = *req.MaxDiscount
	}
	if req.ValidFrom != nil {
		validFrom, err := parseTimePtr(*req.ValidFrom)
		if err != nil {
			return nil, err
		}
		coupon.ValidFrom = validFrom
	}
	if req.ValidUntil != nil {
		validUntil, err := parseTimePtr(*req.ValidUntil)
		if err != nil {
			return nil, err
		}
		coupon.ValidUntil = validUntil
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = *req.UsageLimit
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.CouponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券
func (s *CouponService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.CouponRepo.Delete(ctx, id)
}

// List 优惠券列表
func (s *CouponService) List(ctx context.Context, filter repository.CouponFilter) ([]model.Coupon, error) {
	return s.CouponRepo.List(ctx, filter)
}

// Validate 试算优惠券，不核销
func (s *CouponService) Validate(ctx context.Context, req dto.ValidateCouponReq) (*dto.CouponQuoteResp, error) {
	if req.SubtotalAmount < 0 {
		return nil, ErrBadRequest("INVALID_SUBTOTAL", "subtotal must not be negative")
	}

	coupon, err := s.resolveUsable(ctx, req.Code, req.SubtotalAmount, time.Now())
	if err != nil {
		return nil, err
	}

	discount := coupon.DiscountFor(req.SubtotalAmount)
	return &dto.CouponQuoteResp{
		Code:           coupon.Code,
		DiscountAmount: discount,
		SubtotalAmount: req.SubtotalAmount,
		TotalAmount:    req.SubtotalAmount - discount,
	}, nil
}

// resolveUsable 找出当前可用的券，下单与试算共用
func (s *CouponService) resolveUsable(ctx context.Context, code string, subtotal int64, now time.Time) (*model.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrBadRequest("MISSING_CODE", "coupon code is required")
	}

	coupon, err := s.CouponRepo.GetByCode(ctx, code)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrBadRequest("INVALID_COUPON", "coupon not found")
		}
		return nil, err
	}

	if !coupon.IsActive {
		return nil, ErrBadRequest("COUPON_INACTIVE", "coupon is not active")
	}
	if !coupon.IsWithinWindow(now) {
		return nil, ErrBadRequest("COUPON_EXPIRED", "coupon is outside its validity window")
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, ErrBadRequest("COUPON_EXHAUSTED", "coupon usage limit reached")
	}
	if subtotal < coupon.MinOrderAmount {
		return nil, ErrBadRequest("MIN_ORDER_NOT_MET", "order subtotal below coupon minimum")
	}
	return coupon, nil
}
