package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type BrandController struct {
	brandService *service.BrandService
}

func NewBrandController(brandService *service.BrandService) *BrandController {
	return &BrandController{brandService: brandService}
}

// ListBrands 品牌列表
// @Summary 品牌列表
// @Tags Brand
// @Param search query string false "名称搜索"
// @Param is_active query bool false "启用状态"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.Brand
// @Router /api/brands [get]
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.BrandFilter{
		Search:   c.Query("search"),
		IsActive: queryBoolPtr(c, "is_active"),
		Limit:    limit,
		Offset:   offset,
	}

	brands, err := ctrl.brandService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": brands, "limit": limit, "offset": offset})
}

// GetBrand 品牌详情
// @Summary 按 ID 取品牌
// @Tags Brand
// @Param id path int true "品牌ID"
// @Success 200 {object} model.Brand
// @Router /api/brands/{id} [get]
func (ctrl *BrandController) GetBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	brand, err := ctrl.brandService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// GetBrandBySlug 按 slug 取品牌
// @Summary 按 slug 取品牌
// @Tags Brand
// @Param slug path string true "品牌 slug"
// @Success 200 {object} model.Brand
// @Router /api/brands/slug/{slug} [get]
func (ctrl *BrandController) GetBrandBySlug(c *gin.Context) {
	brand, err := ctrl.brandService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// CreateBrand 创建品牌
// @Summary 创建品牌
// @Tags Brand
// @Accept json
// @Produce json
// @Param body body dto.CreateBrandReq true "品牌参数"
// @Success 201 {object} model.Brand
// @Router /api/brands [post]
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	var req dto.CreateBrandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	brand, err := ctrl.brandService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

// UpdateBrand 更新品牌
// @Summary 更新品牌
// @Tags Brand
// @Accept json
// @Produce json
// @Param id path int true "品牌ID"
// @Param body body dto.UpdateBrandReq true "更新参数"
// @Success 200 {object} model.Brand
// @Router /api/brands/{id} [put]
func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBrandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	brand, err := ctrl.brandService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// DeleteBrand 删除品牌
// @Summary 删除品牌
// @Tags Brand
// @Param id path int true "品牌ID"
// @Success 204
// @Router /api/brands/{id} [delete]
func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.brandService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
