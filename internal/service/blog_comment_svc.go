package service

import (
	"context"
	"strings"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// BlogCommentService 博客评论业务逻辑
// 新评论一律进 pending，公开列表只放出 approved，审核只对管理员开放
type BlogCommentService struct {
	CommentRepo repository.BlogCommentRepository
	PostRepo    repository.BlogPostRepository
}

func NewBlogCommentService(
	commentRepo repository.BlogCommentRepository,
	postRepo repository.BlogPostRepository,
) *BlogCommentService {
	return &BlogCommentService{CommentRepo: commentRepo, PostRepo: postRepo}
}

// Create 发表评论
// 匿名评论必须带 author_name / author_email，回复只支持一层
func (s *BlogCommentService) Create(ctx context.Context, postID int64, userID *int64, req dto.CreateCommentReq) (*model.BlogComment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrBadRequest("MISSING_CONTENT", "comment content is required")
	}
	if userID == nil {
		if strings.TrimSpace(req.AuthorName) == "" {
			return nil, ErrBadRequest("MISSING_AUTHOR_NAME", "author name is required for anonymous comments")
		}
		if strings.TrimSpace(req.AuthorEmail) == "" {
			return nil, ErrBadRequest("MISSING_AUTHOR_EMAIL", "author email is required for anonymous comments")
		}
	}

	post, err := s.PostRepo.GetByID(ctx, postID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("POST_NOT_FOUND", "post not found")
		}
		return nil, err
	}
	if post.Status != model.PostStatusPublished {
		return nil, ErrBadRequest("POST_NOT_PUBLISHED", "comments are only allowed on published posts")
	}

	if req.ParentCommentID != nil {
		parent, err := s.CommentRepo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			if IsNotFound(err) {
				return nil, ErrBadRequest("INVALID_PARENT_COMMENT", "parent comment not found")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrBadRequest("INVALID_PARENT_COMMENT", "parent comment belongs to another post")
		}
		if parent.ParentCommentID != nil {
			return nil, ErrBadRequest("INVALID_PARENT_COMMENT", "replies can only be one level deep")
		}
	}

	comment := &model.BlogComment{
		PostID:          postID,
		UserID:          userID,
		AuthorName:      req.AuthorName,
		AuthorEmail:     req.AuthorEmail,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
		Status:          model.CommentStatusPending,
	}
	if err := s.CommentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Get 按 ID 查评论
func (s *BlogCommentService) Get(ctx context.Context, id int64) (*model.BlogComment, error) {
	comment, err := s.CommentRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("COMMENT_NOT_FOUND", "comment not found")
		}
		return nil, err
	}
	return comment, nil
}

// Update 修改评论内容，作者本人或管理员可改
// 内容变更后回到 pending 重新过审
func (s *BlogCommentService) Update(ctx context.Context, userID int64, isAdmin bool, id int64, req dto.UpdateCommentReq) (*model.BlogComment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && (comment.UserID == nil || *comment.UserID != userID) {
		return nil, ErrForbidden("you can only edit your own comment")
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrBadRequest("MISSING_CONTENT", "comment content is required")
		}
		comment.Content = *req.Content
		if !isAdmin {
			comment.Status = model.CommentStatusPending
		}
	}

	if err := s.CommentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Moderate 审核评论，仅限 approved / rejected
func (s *BlogCommentService) Moderate(ctx context.Context, id int64, status string) (*model.BlogComment, error) {
	if status != model.CommentStatusApproved && status != model.CommentStatusRejected {
		return nil, ErrBadRequest("INVALID_STATUS", "status must be approved or rejected")
	}

	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.CommentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	comment.Status = status
	return comment, nil
}

// Delete 删除评论，连带一层回复，作者本人或管理员可删
func (s *BlogCommentService) Delete(ctx context.Context, userID int64, isAdmin bool, id int64) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && (comment.UserID == nil || *comment.UserID != userID) {
		return ErrForbidden("you can only delete your own comment")
	}
	return s.CommentRepo.Delete(ctx, id)
}

// List 评论列表
// 非管理员只能看 approved
func (s *BlogCommentService) List(ctx context.Context, isAdmin bool, filter repository.BlogCommentFilter) ([]model.BlogComment, error) {
	if !isAdmin {
		filter.Status = model.CommentStatusApproved
	}
	return s.CommentRepo.List(ctx, filter)
}
