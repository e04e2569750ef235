package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// CategoryService 商品分类业务逻辑
type CategoryService struct {
	CategoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryReq) (*model.Category, error) {
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

	// 父分类必须存在
	if req.ParentID != nil {
		if _, err := s.CategoryRepo.GetByID(ctx, *req.ParentID); err != nil {
			if IsNotFound(err) {
				return nil, ErrBadRequest("PARENT_NOT_FOUND", "parent category not found")
			}
			return nil, err
		}
	}

	category := &model.Category{
		Name:        name,
		Slug:        categorySlug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

// Get 按 ID 查分类，带子分类
func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.CategoryRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("CATEGORY_NOT_FOUND", "category not found")
		}
		return nil, err
	}
	return category, nil
}

// GetBySlug 按 slug 查分类
func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*model.Category, error) {
	category, err := s.CategoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("CATEGORY_NOT_FOUND", "category not found")
		}
		return nil, err
	}
	return category, nil
}

// Update 部分更新分类
func (s *CategoryService) Update(ctx context.Context, id int64, req dto.UpdateCategoryReq) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != category.Slug {
		if _, err := s.CategoryRepo.GetBySlug(ctx, *req.Slug); err == nil {
			return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, ErrBadRequest("INVALID_PARENT", "category cannot be its own parent")
		}
		if _, err := s.CategoryRepo.GetByID(ctx, *req.ParentID); err != nil {
			if IsNotFound(err) {
				return nil, ErrBadRequest("PARENT_NOT_FOUND", "parent category not found")
			}
			return nil, err
		}
		category.ParentID = req.ParentID
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.CategoryRepo.Update(ctx, category); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "category slug already exists")
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，有子分类或名下有商品时拒绝
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	children, err := s.CategoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrBadRequest("HAS_CHILD_CATEGORIES", "category has child categories and cannot be deleted")
	}

	products, err := s.CategoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return ErrBadRequest("HAS_PRODUCTS", "category has products and cannot be deleted")
	}

	return s.CategoryRepo.Delete(ctx, id)
}

// List 分类列表
func (s *CategoryService) List(ctx context.Context, filter repository.CategoryFilter) ([]model.Category, error) {
	return s.CategoryRepo.List(ctx, filter)
}
