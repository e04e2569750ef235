package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/service"
)

type BlogTaxonomyController struct {
	categoryService *service.BlogCategoryService
	tagService      *service.BlogTagService
}

func NewBlogTaxonomyController(
	categoryService *service.BlogCategoryService,
	tagService *service.BlogTagService,
) *BlogTaxonomyController {
	return &BlogTaxonomyController{categoryService: categoryService, tagService: tagService}
}

// ==================== 博客分类 ====================

// ListBlogCategories 博客分类列表
// @Summary 博客分类列表
// @Tags BlogTaxonomy
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.BlogCategory
// @Router /api/blog/categories [get]
func (ctrl *BlogTaxonomyController) ListBlogCategories(c *gin.Context) {
	limit, offset := pagination(c)
	categories, err := ctrl.categoryService.List(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories, "limit": limit, "offset": offset})
}

// GetBlogCategory 博客分类详情
// @Summary 按 ID 取博客分类
// @Tags BlogTaxonomy
// @Param id path int true "分类ID"
// @Success 200 {object} model.BlogCategory
// @Router /api/blog/categories/{id} [get]
func (ctrl *BlogTaxonomyController) GetBlogCategory(c *gin.Context) {
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

// CreateBlogCategory 创建博客分类
// @Summary 创建博客分类
// @Tags BlogTaxonomy
// @Accept json
// @Produce json
// @Param body body dto.CreateBlogCategoryReq true "分类参数"
// @Success 201 {object} model.BlogCategory
// @Router /api/blog/categories [post]
func (ctrl *BlogTaxonomyController) CreateBlogCategory(c *gin.Context) {
	var req dto.CreateBlogCategoryReq
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

// UpdateBlogCategory 更新博客分类
// @Summary 更新博客分类
// @Tags BlogTaxonomy
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param body body dto.UpdateBlogCategoryReq true "更新参数"
// @Success 200 {object} model.BlogCategory
// @Router /api/blog/categories/{id} [put]
func (ctrl *BlogTaxonomyController) UpdateBlogCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBlogCategoryReq
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

// DeleteBlogCategory 删除博客分类
// @Summary 删除博客分类，名下有文章时拒绝
// @Tags BlogTaxonomy
// @Param id path int true "分类ID"
// @Success 204
// @Router /api/blog/categories/{id} [delete]
func (ctrl *BlogTaxonomyController) DeleteBlogCategory(c *gin.Context) {
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

// ==================== 博客标签 ====================

// ListBlogTags 博客标签列表
// @Summary 博客标签列表
// @Tags BlogTaxonomy
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.BlogTag
// @Router /api/blog/tags [get]
func (ctrl *BlogTaxonomyController) ListBlogTags(c *gin.Context) {
	limit, offset := pagination(c)
	tags, err := ctrl.tagService.List(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": tags, "limit": limit, "offset": offset})
}

// GetBlogTag 博客标签详情
// @Summary 按 ID 取博客标签
// @Tags BlogTaxonomy
// @Param id path int true "标签ID"
// @Success 200 {object} model.BlogTag
// @Router /api/blog/tags/{id} [get]
func (ctrl *BlogTaxonomyController) GetBlogTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// CreateBlogTag 创建博客标签
// @Summary 创建博客标签
// @Tags BlogTaxonomy
// @Accept json
// @Produce json
// @Param body body dto.CreateBlogTagReq true "标签参数"
// @Success 201 {object} model.BlogTag
// @Router /api/blog/tags [post]
func (ctrl *BlogTaxonomyController) CreateBlogTag(c *gin.Context) {
	var req dto.CreateBlogTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	tag, err := ctrl.tagService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// UpdateBlogTag 更新博客标签
// @Summary 更新博客标签
// @Tags BlogTaxonomy
// @Accept json
// @Produce json
// @Param id path int true "标签ID"
// @Param body body dto.UpdateBlogTagReq true "更新参数"
// @Success 200 {object} model.BlogTag
// @Router /api/blog/tags/{id} [put]
func (ctrl *BlogTaxonomyController) UpdateBlogTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBlogTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	tag, err := ctrl.tagService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteBlogTag 删除博客标签
// @Summary 删除博客标签，仍挂着文章时拒绝
// @Tags BlogTaxonomy
// @Param id path int true "标签ID"
// @Success 204
// @Router /api/blog/tags/{id} [delete]
func (ctrl *BlogTaxonomyController) DeleteBlogTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.tagService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
