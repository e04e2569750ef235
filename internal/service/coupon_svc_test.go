package service

import (
	"testing"
	"time"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

func newCouponService(t *testing.T) *CouponService {
	return NewCouponService(repository.NewCouponRepository(setupTestDB(t)))
}

func TestCouponService_Create(t *testing.T) {
	svc := newCouponService(t)

	coupon, err := svc.Create(testCtx(), dto.CreateCouponReq{
		Code:          "welcome10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
	})
	if err != nil {
		t.Fatalf("创建优惠券失败: %v", err)
	}
	// 券码统一大写存储
	if coupon.Code != "WELCOME10" {
		t.Errorf("code = %s, want WELCOME10", coupon.Code)
	}
	if !coupon.IsActive {
		t.Error("新券应默认启用")
	}
}

func TestCouponService_Create_Validation(t *testing.T) {
	svc := newCouponService(t)

	_, err := svc.Create(testCtx(), dto.CreateCouponReq{DiscountType: model.DiscountTypeFixed, DiscountValue: 100})
	wantCode(t, err, "MISSING_CODE")

	// 百分比超过 100
	_, err = svc.Create(testCtx(), dto.CreateCouponReq{
		Code:          "BAD",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 150,
	})
	wantCode(t, err, "INVALID_PERCENTAGE_VALUE")

	_, err = svc.Create(testCtx(), dto.CreateCouponReq{
		Code:          "BAD",
		DiscountType:  "bogo",
		DiscountValue: 1,
	})
	wantCode(t, err, "INVALID_DISCOUNT_TYPE")

	// 窗口倒挂
	_, err = svc.Create(testCtx(), dto.CreateCouponReq{
		Code:          "BAD",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: 100,
		ValidFrom:     "2026-06-01T00:00:00Z",
		ValidUntil:    "2026-05-01T00:00:00Z",
	})
	wantCode(t, err, "INVALID_WINDOW")

	_, err = svc.Create(testCtx(), dto.CreateCouponReq{
		Code:          "BAD",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: 100,
		ValidFrom:     "tomorrow",
	})
	wantCode(t, err, "INVALID_TIME")
}

func TestCouponService_Create_CodeExists(t *testing.T) {
	svc := newCouponService(t)

	if _, err := svc.Create(testCtx(), dto.CreateCouponReq{
		Code: "SAVE5", DiscountType: model.DiscountTypeFixed, DiscountValue: 500,
	}); err != nil {
		t.Fatalf("创建优惠券失败: %v", err)
	}
	// 小写提交同码
	_, err := svc.Create(testCtx(), dto.CreateCouponReq{
		Code: "save5", DiscountType: model.DiscountTypeFixed, DiscountValue: 500,
	})
	wantCode(t, err, "CODE_EXISTS")
}

func TestCouponService_Validate_Percentage(t *testing.T) {
	svc := newCouponService(t)

	if _, err := svc.Create(testCtx(), dto.CreateCouponReq{
		Code:          "PCT20",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 20,
		MaxDiscount:   1500,
	}); err != nil {
		t.Fatalf("创建优惠券失败: %v", err)
	}

	// 20% of 5000 = 1000，未触顶
	quote, err := svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "PCT20", SubtotalAmount: 5000})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	if quote.DiscountAmount != 1000 {
		t.Errorf("discount = %d, want 1000", quote.DiscountAmount)
	}
	if quote.TotalAmount != 4000 {
		t.Errorf("total = %d, want 4000", quote.TotalAmount)
	}

	// 20% of 20000 = 4000，触顶 1500
	quote, err = svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "PCT20", SubtotalAmount: 20000})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	if quote.DiscountAmount != 1500 {
		t.Errorf("discount = %d, want 1500", quote.DiscountAmount)
	}
}

func TestCouponService_Validate_FixedCappedAtSubtotal(t *testing.T) {
	svc := newCouponService(t)

	if _, err := svc.Create(testCtx(), dto.CreateCouponReq{
		Code: "BIG", DiscountType: model.DiscountTypeFixed, DiscountValue: 9999,
	}); err != nil {
		t.Fatalf("创建优惠券失败: %v", err)
	}

	quote, err := svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "BIG", SubtotalAmount: 500})
	if err != nil {
		t.Fatalf("试算失败: %v", err)
	}
	// 抵扣不超过小计
	if quote.DiscountAmount != 500 {
		t.Errorf("discount = %d, want 500", quote.DiscountAmount)
	}
	if quote.TotalAmount != 0 {
		t.Errorf("total = %d, want 0", quote.TotalAmount)
	}
}

func TestCouponService_Validate_Rejections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	_, err := svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "NOPE", SubtotalAmount: 1000})
	wantCode(t, err, "INVALID_COUPON")

	past := time.Now().Add(-time.Hour)
	expired := &model.Coupon{
		Code: "EXPIRED", DiscountType: model.DiscountTypeFixed, DiscountValue: 100,
		ValidUntil: &past, IsActive: true,
	}
	db.Create(expired)
	_, err = svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "EXPIRED", SubtotalAmount: 1000})
	wantCode(t, err, "COUPON_EXPIRED")

	inactive := &model.Coupon{
		Code: "OFF", DiscountType: model.DiscountTypeFixed, DiscountValue: 100,
	}
	db.Create(inactive)
	db.Model(inactive).Update("is_active", false)
	_, err = svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "OFF", SubtotalAmount: 1000})
	wantCode(t, err, "COUPON_INACTIVE")

	exhausted := &model.Coupon{
		Code: "GONE", DiscountType: model.DiscountTypeFixed, DiscountValue: 100,
		UsageLimit: 2, UsedCount: 2, IsActive: true,
	}
	db.Create(exhausted)
	_, err = svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "GONE", SubtotalAmount: 1000})
	wantCode(t, err, "COUPON_EXHAUSTED")

	minOrder := &model.Coupon{
		Code: "MIN50", DiscountType: model.DiscountTypeFixed, DiscountValue: 100,
		MinOrderAmount: 5000, IsActive: true,
	}
	db.Create(minOrder)
	_, err = svc.Validate(testCtx(), dto.ValidateCouponReq{Code: "MIN50", SubtotalAmount: 4999})
	wantCode(t, err, "MIN_ORDER_NOT_MET")
}

func TestCouponService_Update_CodeImmutable(t *testing.T) {
	svc := newCouponService(t)

	coupon, err := svc.Create(testCtx(), dto.CreateCouponReq{
		Code: "KEEP", DiscountType: model.DiscountTypeFixed, DiscountValue: 100,
	})
	if err != nil {
		t.Fatalf("创建优惠券失败: %v", err)
	}

	updated, err := svc.Update(testCtx(), coupon.ID, dto.UpdateCouponReq{
		DiscountValue: int64Ptr(200),
		UsageLimit:    intPtr(10),
	})
	if err != nil {
		t.Fatalf("更新优惠券失败: %v", err)
	}
	if updated.Code != "KEEP" {
		t.Errorf("code = %s, want KEEP", updated.Code)
	}
	if updated.DiscountValue != 200 {
		t.Errorf("discount_value = %d, want 200", updated.DiscountValue)
	}
}
