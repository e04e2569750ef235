package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// BlogCategoryRepository 博客分类仓储接口
type BlogCategoryRepository interface {
	Create(ctx context.Context, category *model.BlogCategory) error
	GetByID(ctx context.Context, id int64) (*model.BlogCategory, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogCategory, error)
	Update(ctx context.Context, category *model.BlogCategory) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]model.BlogCategory, error)
	CountPosts(ctx context.Context, categoryID int64) (int64, error)
}

// BlogTagRepository 博客标签仓储接口
type BlogTagRepository interface {
	Create(ctx context.Context, tag *model.BlogTag) error
	GetByID(ctx context.Context, id int64) (*model.BlogTag, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogTag, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]model.BlogTag, error)
	Update(ctx context.Context, tag *model.BlogTag) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]model.BlogTag, error)
	CountPosts(ctx context.Context, tagID int64) (int64, error)
}

// ==================== 分类实现 ====================

type blogCategoryRepo struct {
	db *gorm.DB
}

// NewBlogCategoryRepository 创建博客分类仓储
func NewBlogCategoryRepository(db *gorm.DB) BlogCategoryRepository {
	return &blogCategoryRepo{db: db}
}

func (r *blogCategoryRepo) Create(ctx context.Context, category *model.BlogCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *blogCategoryRepo) GetByID(ctx context.Context, id int64) (*model.BlogCategory, error) {
	var category model.BlogCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *blogCategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogCategory, error) {
	var category model.BlogCategory
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *blogCategoryRepo) Update(ctx context.Context, category *model.BlogCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *blogCategoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.BlogCategory{}, id).Error
}

func (r *blogCategoryRepo) List(ctx context.Context, limit, offset int) ([]model.BlogCategory, error) {
	var categories []model.BlogCategory
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Limit(ClampLimit(limit)).
		Offset(offset).
		Find(&categories).Error
	return categories, err
}

func (r *blogCategoryRepo) CountPosts(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// ==================== 标签实现 ====================

type blogTagRepo struct {
	db *gorm.DB
}

// NewBlogTagRepository 创建博客标签仓储
func NewBlogTagRepository(db *gorm.DB) BlogTagRepository {
	return &blogTagRepo{db: db}
}

func (r *blogTagRepo) Create(ctx context.Context, tag *model.BlogTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *blogTagRepo) GetByID(ctx context.Context, id int64) (*model.BlogTag, error) {
	var tag model.BlogTag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *blogTagRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogTag, error) {
	var tag model.BlogTag
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *blogTagRepo) GetBySlugs(ctx context.Context, slugs []string) ([]model.BlogTag, error) {
	var tags []model.BlogTag
	err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&tags).Error
	return tags, err
}

func (r *blogTagRepo) Update(ctx context.Context, tag *model.BlogTag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *blogTagRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.BlogTag{}, id).Error
}

func (r *blogTagRepo) List(ctx context.Context, limit, offset int) ([]model.BlogTag, error) {
	var tags []model.BlogTag
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(ClampLimit(limit)).
		Offset(offset).
		Find(&tags).Error
	return tags, err
}

func (r *blogTagRepo) CountPosts(ctx context.Context, tagID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("blog_post_tags").
		Where("blog_tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}
