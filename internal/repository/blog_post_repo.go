package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// BlogPostRepository 博客文章仓储接口
type BlogPostRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	GetByID(ctx context.Context, id int64) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	Update(ctx context.Context, post *model.BlogPost) error
	ReplaceTags(ctx context.Context, post *model.BlogPost, tags []model.BlogTag) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter BlogPostFilter) ([]model.BlogPost, error)

	IncrementViewCount(ctx context.Context, id int64) error

	// ListDueScheduled 到点待发布的定时文章，发布任务用
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]model.BlogPost, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error

	WithTx(tx *gorm.DB) BlogPostRepository
}

// blogPostSortColumns 排序字段白名单
var blogPostSortColumns = map[string]string{
	"title":        "title",
	"view_count":   "view_count",
	"published_at": "published_at",
	"created_at":   "created_at",
}

// BlogPostFilter 文章过滤条件
type BlogPostFilter struct {
	Search     string // title/excerpt/content 模糊匹配
	Status     string
	AuthorID   *int64
	CategoryID *int64
	TagSlug    string
	Sort       string
	Order      string
	Limit      int
	Offset     int
}

// ==================== 仓储实现 ====================

type blogPostRepo struct {
	db *gorm.DB
}

// NewBlogPostRepository 创建文章仓储
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepo{db: db}
}

func (r *blogPostRepo) Create(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogPostRepo) GetByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepo) Update(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogPostRepo) ReplaceTags(ctx context.Context, post *model.BlogPost, tags []model.BlogTag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *blogPostRepo) Delete(ctx context.Context, id int64) error {
	post := model.BlogPost{BaseModel: model.BaseModel{ID: id}}
	// 先解除标签关联再删行
	if err := r.db.WithContext(ctx).Model(&post).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&post).Error
}

func (r *blogPostRepo) List(ctx context.Context, filter BlogPostFilter) ([]model.BlogPost, error) {
	var posts []model.BlogPost

	query := r.db.WithContext(ctx).Model(&model.BlogPost{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title LIKE ? OR excerpt LIKE ? OR content LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
			Joins("JOIN blog_tags ON blog_tags.id = blog_post_tags.blog_tag_id").
			Where("blog_tags.slug = ?", filter.TagSlug)
	}

	column, ok := blogPostSortColumns[filter.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.Order == "asc" {
		direction = "ASC"
	}

	err := query.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order(column + " " + direction).
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&posts).Error
	return posts, err
}

func (r *blogPostRepo) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *blogPostRepo) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.db.WithContext(ctx).
		Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?", model.PostStatusScheduled, now).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *blogPostRepo) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ? AND status = ?", id, model.PostStatusScheduled).
		Updates(map[string]interface{}{
			"status":       model.PostStatusPublished,
			"published_at": publishedAt,
		}).Error
}

func (r *blogPostRepo) WithTx(tx *gorm.DB) BlogPostRepository {
	return &blogPostRepo{db: tx}
}
