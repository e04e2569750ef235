package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// CouponRepository 优惠券仓储接口
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetByID(ctx context.Context, id int64) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CouponFilter) ([]model.Coupon, error)

	// Redeem 原子核销：UPDATE ... WHERE used_count < usage_limit
	// 返回 0 行表示已用尽
	Redeem(ctx context.Context, id int64) (int64, error)
	Release(ctx context.Context, id int64) error

	// DeactivateExpired 停用过期券，定时任务用
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)

	WithTx(tx *gorm.DB) CouponRepository
}

// CouponFilter 优惠券过滤条件
type CouponFilter struct {
	Search   string
	IsActive *bool
	Limit    int
	Offset   int
}

// ==================== 仓储实现 ====================

type couponRepo struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepo{db: db}
}

func (r *couponRepo) Create(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepo) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepo) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepo) Update(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *couponRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Coupon{}, id).Error
}

func (r *couponRepo) List(ctx context.Context, filter CouponFilter) ([]model.Coupon, error) {
	var coupons []model.Coupon

	query := r.db.WithContext(ctx).Model(&model.Coupon{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	err := query.
		Order("created_at DESC").
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&coupons).Error
	return coupons, err
}

func (r *couponRepo) Redeem(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("id = ? AND is_active = ? AND (usage_limit = 0 OR used_count < usage_limit)", id, true).
		Update("used_count", gorm.Expr("used_count + 1"))
	return result.RowsAffected, result.Error
}

func (r *couponRepo) Release(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("id = ? AND used_count > 0", id).
		Update("used_count", gorm.Expr("used_count - 1")).Error
}

func (r *couponRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *couponRepo) WithTx(tx *gorm.DB) CouponRepository {
	return &couponRepo{db: tx}
}
