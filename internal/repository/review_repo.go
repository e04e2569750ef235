package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// ReviewRepository 评论仓储接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	ExistsForUser(ctx context.Context, productID, userID int64) (bool, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ReviewFilter) ([]model.Review, error)
}

// ReviewFilter 评论过滤条件
type ReviewFilter struct {
	ProductID *int64
	UserID    *int64
	MinRating int
	Limit     int
	Offset    int
}

// ==================== 仓储实现 ====================

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ExistsForUser(ctx context.Context, productID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepo) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepo) List(ctx context.Context, filter ReviewFilter) ([]model.Review, error) {
	var reviews []model.Review

	query := r.db.WithContext(ctx).Model(&model.Review{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	err := query.
		Order("created_at DESC").
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&reviews).Error
	return reviews, err
}
