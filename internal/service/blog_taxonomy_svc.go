package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// ==================== 博客分类 ====================

// BlogCategoryService 博客分类业务逻辑
type BlogCategoryService struct {
	CategoryRepo repository.BlogCategoryRepository
}

func NewBlogCategoryService(categoryRepo repository.BlogCategoryRepository) *BlogCategoryService {
	return &BlogCategoryService{CategoryRepo: categoryRepo}
}

// Create 创建博客分类
func (s *BlogCategoryService) Create(ctx context.Context, req dto.CreateBlogCategoryReq) (*model.BlogCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBadRequest("MISSING_NAME", "category name is required")
	}

	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	}
	if _, err := s.CategoryRepo.GetBySlug(ctx, categorySlug); err == nil {
		return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	category := &model.BlogCategory{
		Name:        name,
		Slug:        categorySlug,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

// Get 按 ID 查博客分类
func (s *BlogCategoryService) Get(ctx context.Context, id int64) (*model.BlogCategory, error) {
	category, err := s.CategoryRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("CATEGORY_NOT_FOUND", "blog category not found")
		}
		return nil, err
	}
	return category, nil
}

// Update 部分更新博客分类
func (s *BlogCategoryService) Update(ctx context.Context, id int64, req dto.UpdateBlogCategoryReq) (*model.BlogCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		if _, err := s.CategoryRepo.GetBySlug(ctx, *req.Slug); err == nil {
			return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		category.Slug = *req.Slug
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.CategoryRepo.Update(ctx, category); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除博客分类，名下有文章时拒绝
func (s *BlogCategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.CategoryRepo.CountPosts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBadRequest("HAS_POSTS", "category has posts and cannot be deleted")
	}
	return s.CategoryRepo.Delete(ctx, id)
}

// List 博客分类列表
func (s *BlogCategoryService) List(ctx context.Context, limit, offset int) ([]model.BlogCategory, error) {
	return s.CategoryRepo.List(ctx, limit, offset)
}

// ==================== 博客标签 ====================

// BlogTagService 博客标签业务逻辑
type BlogTagService struct {
	TagRepo repository.BlogTagRepository
}

func NewBlogTagService(tagRepo repository.BlogTagRepository) *BlogTagService {
	return &BlogTagService{TagRepo: tagRepo}
}

// Create 创建博客标签
func (s *BlogTagService) Create(ctx context.Context, req dto.CreateBlogTagReq) (*model.BlogTag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBadRequest("MISSING_NAME", "tag name is required")
	}

	tagSlug := req.Slug
	if tagSlug == "" {
		tagSlug = slug.Make(name)
	}
	if _, err := s.TagRepo.GetBySlug(ctx, tagSlug); err == nil {
		return nil, ErrBadRequest("SLUG_EXISTS", "tag slug already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	tag := &model.BlogTag{Name: name, Slug: tagSlug}
	if err := s.TagRepo.Create(ctx, tag); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "tag slug already exists")
		}
		return nil, err
	}
	return tag, nil
}

// Get 按 ID 查博客标签
func (s *BlogTagService) Get(ctx context.Context, id int64) (*model.BlogTag, error) {
	tag, err := s.TagRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("TAG_NOT_FOUND", "blog tag not found")
		}
		return nil, err
	}
	return tag, nil
}

// Update 部分更新博客标签
func (s *BlogTagService) Update(ctx context.Context, id int64, req dto.UpdateBlogTagReq) (*model.BlogTag, error) {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != tag.Slug {
		if _, err := s.TagRepo.GetBySlug(ctx, *req.Slug); err == nil {
			return nil, ErrBadRequest("SLUG_EXISTS", "tag slug already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		tag.Slug = *req.Slug
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}

	if err := s.TagRepo.Update(ctx, tag); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "tag slug already exists")
		}
		return nil, err
	}
	return tag, nil
}

// Delete 删除博客标签，仍挂着文章时拒绝
func (s *BlogTagService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.TagRepo.CountPosts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBadRequest("HAS_POSTS", "tag is attached to posts and cannot be deleted")
	}
	return s.TagRepo.Delete(ctx, id)
}

// List 博客标签列表
func (s *BlogTagService) List(ctx context.Context, limit, offset int) ([]model.BlogTag, error) {
	return s.TagRepo.List(ctx, limit, offset)
}
