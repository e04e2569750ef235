package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CategoryFilter) ([]model.Category, error)

	// 删除前的引用检查
	CountChildren(ctx context.Context, id int64) (int64, error)
	CountProducts(ctx context.Context, id int64) (int64, error)
}

// CategoryFilter 分类过滤条件
// ParentID 与 RootOnly 二选一：RootOnly 对应 ?parentId=null
type CategoryFilter struct {
	Search   string
	ParentID *int64
	RootOnly bool
	IsActive *bool
	Limit    int
	Offset   int
}

// ==================== 仓储实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Preload("Children").
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *categoryRepo) List(ctx context.Context, filter CategoryFilter) ([]model.Category, error) {
	var categories []model.Category

	query := r.db.WithContext(ctx).Model(&model.Category{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.RootOnly {
		query = query.Where("parent_id IS NULL")
	} else if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	err := query.
		Order("sort_order ASC, name ASC").
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *categoryRepo) CountProducts(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}
