package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// BlogCommentRepository 博客评论仓储接口
type BlogCommentRepository interface {
	Create(ctx context.Context, comment *model.BlogComment) error
	GetByID(ctx context.Context, id int64) (*model.BlogComment, error)
	Update(ctx context.Context, comment *model.BlogComment) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter BlogCommentFilter) ([]model.BlogComment, error)
	CountReplies(ctx context.Context, parentID int64) (int64, error)
}

// BlogCommentFilter 评论过滤条件
type BlogCommentFilter struct {
	PostID   *int64
	UserID   *int64
	Status   string
	TopLevel bool // 只取一级评论
	Limit    int
	Offset   int
}

// ==================== 仓储实现 ====================

type blogCommentRepo struct {
	db *gorm.DB
}

// NewBlogCommentRepository 创建评论仓储
func NewBlogCommentRepository(db *gorm.DB) BlogCommentRepository {
	return &blogCommentRepo{db: db}
}

func (r *blogCommentRepo) Create(ctx context.Context, comment *model.BlogComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *blogCommentRepo) GetByID(ctx context.Context, id int64) (*model.BlogComment, error) {
	var comment model.BlogComment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *blogCommentRepo) Update(ctx context.Context, comment *model.BlogComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *blogCommentRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.BlogComment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *blogCommentRepo) Delete(ctx context.Context, id int64) error {
	// 一并删除一层回复
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_comment_id = ?", id).Delete(&model.BlogComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BlogComment{}, id).Error
	})
}

func (r *blogCommentRepo) List(ctx context.Context, filter BlogCommentFilter) ([]model.BlogComment, error) {
	var comments []model.BlogComment

	query := r.db.WithContext(ctx).Model(&model.BlogComment{})
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TopLevel {
		query = query.Where("parent_comment_id IS NULL")
	}

	err := query.
		Order("created_at ASC").
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&comments).Error
	return comments, err
}

func (r *blogCommentRepo) CountReplies(ctx context.Context, parentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BlogComment{}).
		Where("parent_comment_id = ?", parentID).
		Count(&count).Error
	return count, err
}
