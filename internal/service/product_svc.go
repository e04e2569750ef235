package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// ProductService 商品业务逻辑
type ProductService struct {
	ProductRepo  repository.ProductRepository
	BrandRepo    repository.BrandRepository
	CategoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		ProductRepo:  productRepo,
		BrandRepo:    brandRepo,
		CategoryRepo: categoryRepo,
	}
}

// checkRefs 校验品牌/分类外键
func (s *ProductService) checkRefs(ctx context.Context, brandID, categoryID *int64) error {
	if brandID != nil {
		if _, err := s.BrandRepo.GetByID(ctx, *brandID); err != nil {
			if IsNotFound(err) {
				return ErrBadRequest("BRAND_NOT_FOUND", "brand not found")
			}
			return err
		}
	}
	if categoryID != nil {
		if _, err := s.CategoryRepo.GetByID(ctx, *categoryID); err != nil {
			if IsNotFound(err) {
				return ErrBadRequest("CATEGORY_NOT_FOUND", "category not found")
			}
			return err
		}
	}
	return nil
}

// Create 创建商品
// SKU 全局唯一，slug 缺省时由 name 生成
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductReq) (*model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBadRequest("MISSING_NAME", "product name is required")
	}
	if req.SKU == "" {
		return nil, ErrBadRequest("MISSING_SKU", "product sku is required")
	}
	if req.PriceAmount < 0 {
		return nil, ErrBadRequest("INVALID_PRICE", "price must not be negative")
	}
	if req.StockQuantity < 0 {
		return nil, ErrBadRequest("INVALID_STOCK", "stock quantity must not be negative")
	}

	if _, err := s.ProductRepo.GetBySKU(ctx, req.SKU); err == nil {
		return nil, ErrBadRequest("DUPLICATE_SKU", "sku already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	productSlug := req.Slug
	if productSlug == "" {
		productSlug = slug.Make(name)
	}
	if _, err := s.ProductRepo.GetBySlug(ctx, productSlug); err == nil {
		return nil, ErrBadRequest("SLUG_EXISTS", "product slug already exists")
	} else if !IsNotFound(err) {
		return nil, err
	}

	if err := s.checkRefs(ctx, req.BrandID, req.CategoryID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	product := &model.Product{
		Name:           name,
		Slug:           productSlug,
		Description:    req.Description,
		ShortDesc:      req.ShortDesc,
		BrandID:        req.BrandID,
		CategoryID:     req.CategoryID,
		PriceAmount:    req.PriceAmount,
		OriginalAmount: req.OriginalAmount,
		Currency:       currency,
		SKU:            req.SKU,
		StockQuantity:  req.StockQuantity,
		Tags:           req.Tags,
		Ingredients:    req.Ingredients,
		SkinTypes:      req.SkinTypes,
		IsFeatured:     req.IsFeatured,
		IsNew:          req.IsNew,
		IsBestSeller:   req.IsBestSeller,
		IsActive:       true,
		IsCrueltyFree:  req.IsCrueltyFree,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.ProductRepo.Create(ctx, product); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("DUPLICATE_SKU", "sku or slug already exists")
		}
		return nil, err
	}
	return product, nil
}

// Get 按 ID 查商品
func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.ProductRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("PRODUCT_NOT_FOUND", "product not found")
		}
		return nil, err
	}
	return product, nil
}

// GetBySlug 按 slug 查商品
func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	product, err := s.ProductRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("PRODUCT_NOT_FOUND", "product not found")
		}
		return nil, err
	}
	return product, nil
}

// Update 部分更新商品
func (s *ProductService) Update(ctx context.Context, id int64, req dto.UpdateProductReq) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil && *req.SKU != product.SKU {
		if _, err := s.ProductRepo.GetBySKU(ctx, *req.SKU); err == nil {
			return nil, ErrBadRequest("DUPLICATE_SKU", "sku already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		product.SKU = *req.SKU
	}
	if req.Slug != nil && *req.Slug != product.Slug {
		if _, err := s.ProductRepo.GetBySlug(ctx, *req.Slug); err == nil {
			return nil, ErrBadRequest("SLUG_EXISTS", "product slug already exists")
		} else if !IsNotFound(err) {
			return nil, err
		}
		product.Slug = *req.Slug
	}
	if err := s.checkRefs(ctx, req.BrandID, req.CategoryID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ShortDesc != nil {
		product.ShortDesc = *req.ShortDesc
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.PriceAmount != nil {
		if *req.PriceAmount < 0 {
			return nil, ErrBadRequest("INVALID_PRICE", "price must not be negative")
		}
		product.PriceAmount = *req.PriceAmount
	}
	if req.OriginalAmount != nil {
		product.OriginalAmount = *req.OriginalAmount
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, ErrBadRequest("INVALID_STOCK", "stock quantity must not be negative")
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Ingredients != nil {
		product.Ingredients = req.Ingredients
	}
	if req.SkinTypes != nil {
		product.SkinTypes = req.SkinTypes
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsBestSeller != nil {
		product.IsBestSeller = *req.IsBestSeller
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsCrueltyFree != nil {
		product.IsCrueltyFree = *req.IsCrueltyFree
	}

	if err := s.ProductRepo.Update(ctx, product); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("DUPLICATE_SKU", "sku or slug already exists")
		}
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.ProductRepo.Delete(ctx, id)
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.ProductRepo.List(ctx, filter)
}

// ==================== 商品图片 ====================

// AddImage 新增商品图片
// is_primary 图片唯一：新主图会撤掉旧主图
func (s *ProductService) AddImage(ctx context.Context, productID int64, req dto.CreateProductImageReq) (*model.ProductImage, error) {
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}
	if req.URL == "" {
		return nil, ErrBadRequest("MISSING_URL", "image url is required")
	}

	image := &model.ProductImage{
		ProductID: productID,
		URL:       req.URL,
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
		IsPrimary: req.IsPrimary,
	}

	if req.IsPrimary {
		if err := s.demoteOtherPrimaries(ctx, productID, 0); err != nil {
			return nil, err
		}
	}
	if err := s.ProductRepo.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// ListImages 商品图片列表
func (s *ProductService) ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}
	return s.ProductRepo.ListImages(ctx, productID)
}

// UpdateImage 更新商品图片
func (s *ProductService) UpdateImage(ctx context.Context, productID, imageID int64, req dto.UpdateProductImageReq) (*model.ProductImage, error) {
	image, err := s.getOwnedImage(ctx, productID, imageID)
	if err != nil {
		return nil, err
	}

	if req.URL != nil {
		image.URL = *req.URL
	}
	if req.AltText != nil {
		image.AltText = *req.AltText
	}
	if req.SortOrder != nil {
		image.SortOrder = *req.SortOrder
	}
	if req.IsPrimary != nil {
		if *req.IsPrimary && !image.IsPrimary {
			if err := s.demoteOtherPrimaries(ctx, productID, imageID); err != nil {
				return nil, err
			}
		}
		image.IsPrimary = *req.IsPrimary
	}

	if err := s.ProductRepo.UpdateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage 删除商品图片
func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID int64) error {
	if _, err := s.getOwnedImage(ctx, productID, imageID); err != nil {
		return err
	}
	return s.ProductRepo.DeleteImage(ctx, imageID)
}

func (s *ProductService) getOwnedImage(ctx context.Context, productID, imageID int64) (*model.ProductImage, error) {
	image, err := s.ProductRepo.GetImageByID(ctx, imageID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("IMAGE_NOT_FOUND", "product image not found")
		}
		return nil, err
	}
	if image.ProductID != productID {
		return nil, ErrNotFound("IMAGE_NOT_FOUND", "product image not found")
	}
	return image, nil
}

func (s *ProductService) demoteOtherPrimaries(ctx context.Context, productID, keepImageID int64) error {
	images, err := s.ProductRepo.ListImages(ctx, productID)
	if err != nil {
		return err
	}
	for i := range images {
		if images[i].IsPrimary && images[i].ID != keepImageID {
			images[i].IsPrimary = false
			if err := s.ProductRepo.UpdateImage(ctx, &images[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
