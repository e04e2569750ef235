package service

import (
	"context"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// BlogPostService 博客文章业务逻辑
type BlogPostService struct {
	PostRepo     repository.BlogPostRepository
	CategoryRepo repository.BlogCategoryRepository
	TagRepo      repository.BlogTagRepository
}

func NewBlogPostService(
	postRepo repository.BlogPostRepository,
	categoryRepo repository.BlogCategoryRepository,
	tagRepo repository.BlogTagRepository,
) *BlogPostService {
	return &BlogPostService{
		PostRepo:     postRepo,
		CategoryRepo: categoryRepo,
		TagRepo:      tagRepo,
	}
}

// resolveTags 按 slug 批量找标签，缺一个即报错
func (s *BlogPostService) resolveTags(ctx context.Context, slugs []string) ([]model.BlogTag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	tags, err := s.TagRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(slugs) {
		return nil, ErrBadRequest("TAG_NOT_FOUND", "one or more tags do not exist")
	}
	return tags, nil
}

// Create 创建文章
// scheduled 状态必须带 publish_at，published 状态落 published_at
func (s *BlogPostService) Create(ctx context.Context, authorID int64, req dto.CreatePostReq) (*model.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrBadRequest("MISSING_TITLE", "post title is required")
	}
	if req.Content == "" {
		return nil, ErrBadRequest("MISSING_CONTENT", "post content is required")
	}

	status := req.Status
	if status == "" {
		status = model.PostStatusDraft
	}
	if !model.IsValidPostStatus(status) {
		return nil, ErrBadRequest("INVALID_STATUS", "unknown post status")
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Make(title)
	}
	if _, err := s.PostRepo.GetBySlug(ctx, postSlug); err == nil {
		return nil, ErrBadRequest("SLUG_EXISTS", "post slug already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if IsNotFound(err) {
				return nil, ErrBadRequest("CATEGORY_NOT_FOUND", "blog category not found")
			}
			return nil, err
		}
	}
	tags, err := s.resolveTags(ctx, req.TagSlugs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &model.BlogPost{
		Title:           title,
		Slug:            postSlug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		AuthorID:        authorID,
		CategoryID:      req.CategoryID,
		Tags:            tags,
		CoverImageURL:   req.CoverImageURL,
		Status:          status,
		ReadTimeMinutes: model.CalcReadTime(req.Content),
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		CanonicalURL:    req.CanonicalURL,
		OGImageURL:      req.OGImageURL,
	}

	switch status {
	case model.PostStatusScheduled:
		if req.PublishAt == "" {
			return nil, ErrBadRequest("MISSING_PUBLISH_AT", "scheduled posts require publish_at")
		}
		publishAt, err := time.Parse(time.RFC3339, req.PublishAt)
		if err != nil {
			return nil, ErrBadRequest("INVALID_TIME", "publish_at must be RFC3339 formatted")
		}
		post.PublishAt = &publishAt
	case model.PostStatusPublished:
		post.PublishedAt = &now
	}

	if err := s.PostRepo.Create(ctx, post); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "post slug already exists")
		}
		return nil, err
	}
	return post, nil
}

// Get 按 ID 查文章
func (s *BlogPostService) Get(ctx context.Context, id int64) (*model.BlogPost, error) {
	post, err := s.PostRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("POST_NOT_FOUND", "post not found")
		}
		return nil, err
	}
	return post, nil
}

// GetBySlug 按 slug 查文章，公开读路径顺带累加阅读数
func (s *BlogPostService) GetBySlug(ctx context.Context, postSlug string, countView bool) (*model.BlogPost, error) {
	post, err := s.PostRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("POST_NOT_FOUND", "post not found")
		}
		return nil, err
	}
	if countView && post.Status == model.PostStatusPublished {
		if err := s.PostRepo.IncrementViewCount(ctx, post.ID); err != nil {
			return nil, err
		}
		post.ViewCount++
	}
	return post, nil
}

// Update 部分更新文章，作者本人或管理员可改
func (s *BlogPostService) Update(ctx context.Context, userID int64, isAdmin bool, id int64, req dto.UpdatePostReq) (*model.BlogPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && post.AuthorID != userID {
		return nil, ErrForbidden("you can only edit your own post")
	}

	if req.Slug != nil && *req.Slug != post.Slug {
		if _, err := s.PostRepo.GetBySlug(ctx, *req.Slug); err == nil {
			return nil, ErrBadRequest("SLUG_EXISTS", "post slug already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		post.Slug = *req.Slug
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
		post.ReadTimeMinutes = model.CalcReadTime(*req.Content)
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if IsNotFound(err) {
				return nil, ErrBadRequest("CATEGORY_NOT_FOUND", "blog category not found")
			}
			return nil, err
		}
		post.CategoryID = req.CategoryID
	}
	if req.CoverImageURL != nil {
		post.CoverImageURL = *req.CoverImageURL
	}
	if req.MetaTitle != nil {
		post.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		post.MetaKeywords = req.MetaKeywords
	}
	if req.CanonicalURL != nil {
		post.CanonicalURL = *req.CanonicalURL
	}
	if req.OGImageURL != nil {
		post.OGImageURL = *req.OGImageURL
	}

	if req.PublishAt != nil {
		publishAt, err := time.Parse(time.RFC3339, *req.PublishAt)
		if err != nil {
			return nil, ErrBadRequest("INVALID_TIME", "publish_at must be RFC3339 formatted")
		}
		post.PublishAt = &publishAt
	}
	if req.Status != nil && *req.Status != post.Status {
		if !model.IsValidPostStatus(*req.Status) {
			return nil, ErrBadRequest("INVALID_STATUS", "unknown post status")
		}
		switch *req.Status {
		case model.PostStatusScheduled:
			if post.PublishAt == nil {
				return nil, ErrBadRequest("MISSING_PUBLISH_AT", "scheduled posts require publish_at")
			}
		case model.PostStatusPublished:
			if post.PublishedAt == nil {
				now := time.Now()
				post.PublishedAt = &now
			}
		}
		post.Status = *req.Status
	}

	if err := s.PostRepo.Update(ctx, post); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "post slug already exists")
		}
		return nil, err
	}

	if req.TagSlugs != nil {
		tags, err := s.resolveTags(ctx, req.TagSlugs)
		if err != nil {
			return nil, err
		}
		if err := s.PostRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, err
		}
		post.Tags = tags
	}
	return post, nil
}

// Delete 删除文章，作者本人或管理员可删
func (s *BlogPostService) Delete(ctx context.Context, userID int64, isAdmin bool, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && post.AuthorID != userID {
		return ErrForbidden("you can only delete your own post")
	}
	return s.PostRepo.Delete(ctx, id)
}

// List 文章列表
// 非管理员调用方只能看已发布的
func (s *BlogPostService) List(ctx context.Context, isAdmin bool, filter repository.BlogPostFilter) ([]model.BlogPost, error) {
	if !isAdmin {
		filter.Status = model.PostStatusPublished
	}
	return s.PostRepo.List(ctx, filter)
}
