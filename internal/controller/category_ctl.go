package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Category
// @Param search query string false "名称搜索"
// @Param parent_id query string false "父分类ID，传 null 取根分类"
// @Param is_active query bool false "启用状态"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.Category
// @Router /api/categories [get]
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.CategoryFilter{
		Search:   c.Query("search"),
		IsActive: queryBoolPtr(c, "is_active"),
		Limit:    limit,
		Offset:   offset,
	}

	// parent_id=null 表示只取根分类
	if raw := c.Query("parent_id"); raw == "null" {
		filter.RootOnly = true
	} else if raw != "" {
		parentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "INVALID_ID", "invalid parent_id")
			return
		}
		filter.ParentID = &parentID
	}

	categories, err := ctrl.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories, "limit": limit, "offset": offset})
}

// GetCategory 分类详情，带子分类
// @Summary 按 ID 取分类
// @Tags Category
// @Param id path int true "分类ID"
// @Success 200 {object} model.Category
// @Router /api/categories/{id} [get]
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetCategoryBySlug 按 slug 取分类
// @Summary 按 slug 取分类
// @Tags Category
// @Param slug path string true "分类 slug"
// @Success 200 {object} model.Category
// @Router /api/categories/slug/{slug} [get]
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	category, err := ctrl.categoryService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Category
// @Accept json
// @Produce json
// @Param body body dto.CreateCategoryReq true "分类参数"
// @Success 201 {object} model.Category
// @Router /api/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	category, err := ctrl.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Tags Category
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param body body dto.UpdateCategoryReq true "更新参数"
// @Success 200 {object} model.Category
// @Router /api/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	category, err := ctrl.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory 删除分类
// @Summary 删除分类，有子分类或名下有商品时拒绝
// @Tags Category
// @Param id path int true "分类ID"
// @Success 204
// @Router /api/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
