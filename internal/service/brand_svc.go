package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// BrandService 品牌业务逻辑
type BrandService struct {
	BrandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) *BrandService {
	return &BrandService{BrandRepo: brandRepo}
}

// Create 创建品牌，slug 缺省时由 name 生成
func (s *BrandService) Create(ctx context.Context, req dto.CreateBrandReq) (*model.Brand, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBadRequest("MISSING_NAME", "brand name is required")
	}

	brandSlug := req.Slug
	if brandSlug == "" {
		brandSlug = slug.Make(name)
	}

	if _, err := s.BrandRepo.GetBySlug(ctx, brandSlug); err == nil {
		return nil, ErrBadRequest("SLUG_EXISTS", "brand slug already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	brand := &model.Brand{
		Name:        name,
		Slug:        brandSlug,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := s.BrandRepo.Create(ctx, brand); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "brand slug already exists")
		}
		return nil, err
	}
	return brand, nil
}

// Get 按 ID 查品牌
func (s *BrandService) Get(ctx context.Context, id int64) (*model.Brand, error) {
	brand, err := s.BrandRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("BRAND_NOT_FOUND", "brand not found")
		}
		return nil, err
	}
	return brand, nil
}

// GetBySlug 按 slug 查品牌
func (s *BrandService) GetBySlug(ctx context.Context, brandSlug string) (*model.Brand, error) {
	brand, err := s.BrandRepo.GetBySlug(ctx, brandSlug)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("BRAND_NOT_FOUND", "brand not found")
		}
		return nil, err
	}
	return brand, nil
}

// Update 部分更新品牌
func (s *BrandService) Update(ctx context.Context, id int64, req dto.UpdateBrandReq) (*model.Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		brand.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != brand.Slug {
		if _, err := s.BrandRepo.GetBySlug(ctx, *req.Slug); err == nil {
			return nil, ErrBadRequest("SLUG_EXISTS", "brand slug already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		brand.Slug = *req.Slug
	}
	if req.Description != nil {
		brand.Description = *req.Description
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := s.BrandRepo.Update(ctx, brand); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("SLUG_EXISTS", "brand slug already exists")
		}
		return nil, err
	}
	return brand, nil
}

// Delete 删除品牌，名下有商品时拒绝
func (s *BrandService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.BrandRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBadRequest("HAS_PRODUCTS", "brand has products and cannot be deleted")
	}
	return s.BrandRepo.Delete(ctx, id)
}

// List 品牌列表
func (s *BrandService) List(ctx context.Context, filter repository.BrandFilter) ([]model.Brand, error) {
	return s.BrandRepo.List(ctx, filter)
}
