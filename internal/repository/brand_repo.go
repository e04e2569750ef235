package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// BrandRepository 品牌仓储接口
type BrandRepository interface {
	Create(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*model.Brand, error)
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter BrandFilter) ([]model.Brand, error)
	CountProducts(ctx context.Context, brandID int64) (int64, error)
}

// BrandFilter 品牌过滤条件
type BrandFilter struct {
	Search   string
	IsActive *bool
	Limit    int
	Offset   int
}

// ==================== 仓储实现 ====================

type brandRepo struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓储
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) GetBySlug(ctx context.Context, slug string) (*model.Brand, error) {
	var brand model.Brand
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Brand{}, id).Error
}

func (r *brandRepo) List(ctx context.Context, filter BrandFilter) ([]model.Brand, error) {
	var brands []model.Brand

	query := r.db.WithContext(ctx).Model(&model.Brand{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	err := query.
		Order("name ASC").
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&brands).Error
	return brands, err
}

func (r *brandRepo) CountProducts(ctx context.Context, brandID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("brand_id = ?", brandID).
		Count(&count).Error
	return count, err
}
