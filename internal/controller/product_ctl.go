package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// ListProducts 商品列表
// @Summary 商品列表，支持搜索、筛选、排序
// @Tags Product
// @Param search query string false "关键词搜索"
// @Param brand_id query int false "品牌ID"
// @Param category_id query int false "分类ID"
// @Param is_featured query bool false "精选"
// @Param is_new query bool false "新品"
// @Param is_best_seller query bool false "热销"
// @Param is_active query bool false "上架状态"
// @Param skin_type query string false "适用肤质"
// @Param sort query string false "排序字段 name|price|rating|created_at|updated_at"
// @Param order query string false "asc|desc"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.Product
// @Router /api/products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.ProductFilter{
		Search:       c.Query("search"),
		BrandID:      queryInt64Ptr(c, "brand_id"),
		CategoryID:   queryInt64Ptr(c, "category_id"),
		IsFeatured:   queryBoolPtr(c, "is_featured"),
		IsNew:        queryBoolPtr(c, "is_new"),
		IsBestSeller: queryBoolPtr(c, "is_best_seller"),
		IsActive:     queryBoolPtr(c, "is_active"),
		SkinType:     c.Query("skin_type"),
		Sort:         c.Query("sort"),
		Order:        c.Query("order"),
		Limit:        limit,
		Offset:       offset,
	}

	products, err := ctrl.productService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products, "limit": limit, "offset": offset})
}

// GetProduct 商品详情
// @Summary 按 ID 取商品
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductBySlug 按 slug 取商品
// @Summary 按 slug 取商品
// @Tags Product
// @Param slug path string true "商品 slug"
// @Success 200 {object} model.Product
// @Router /api/products/slug/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := ctrl.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ==================== 管理接口 ====================

// CreateProduct 创建商品
// @Summary 创建商品
// @Tags Product
// @Accept json
// @Produce json
// @Param body body dto.CreateProductReq true "商品参数"
// @Success 201 {object} model.Product
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Tags Product
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param body body dto.UpdateProductReq true "更新参数"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product
// @Param id path int true "商品ID"
// @Success 204
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ==================== 商品图片 ====================

// ListProductImages 商品图片列表
// @Summary 商品图片列表
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {array} model.ProductImage
// @Router /api/products/{id}/images [get]
func (ctrl *ProductController) ListProductImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := ctrl.productService.ListImages(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": images})
}

// AddProductImage 新增商品图片
// @Summary 新增商品图片
// @Tags Product
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param body body dto.CreateProductImageReq true "图片参数"
// @Success 201 {object} model.ProductImage
// @Router /api/products/{id}/images [post]
func (ctrl *ProductController) AddProductImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProductImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	image, err := ctrl.productService.AddImage(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// UpdateProductImage 更新商品图片
// @Summary 更新商品图片
// @Tags Product
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param imageId path int true "图片ID"
// @Param body body dto.UpdateProductImageReq true "更新参数"
// @Success 200 {object} model.ProductImage
// @Router /api/products/{id}/images/{imageId} [put]
func (ctrl *ProductController) UpdateProductImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}

	var req dto.UpdateProductImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	image, err := ctrl.productService.UpdateImage(c.Request.Context(), id, imageID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// DeleteProductImage 删除商品图片
// @Summary 删除商品图片
// @Tags Product
// @Param id path int true "商品ID"
// @Param imageId path int true "图片ID"
// @Success 204
// @Router /api/products/{id}/images/{imageId} [delete]
func (ctrl *ProductController) DeleteProductImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteImage(c.Request.Context(), id, imageID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
