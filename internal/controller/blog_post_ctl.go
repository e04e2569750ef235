package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type BlogPostController struct {
	postService *service.BlogPostService
}

func NewBlogPostController(postService *service.BlogPostService) *BlogPostController {
	return &BlogPostController{postService: postService}
}

// ListPosts 文章列表
// @Summary 文章列表，非管理员只看已发布
// @Tags Blog
// @Param search query string false "标题/摘要/正文搜索"
// @Param status query string false "状态筛选，仅管理员生效"
// @Param category_id query int false "分类ID"
// @Param tag query string false "标签 slug"
// @Param sort query string false "排序字段 title|view_count|published_at|created_at"
// @Param order query string false "asc|desc"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.BlogPost
// @Router /api/blog/posts [get]
func (ctrl *BlogPostController) ListPosts(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.BlogPostFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		AuthorID:   queryInt64Ptr(c, "author_id"),
		CategoryID: queryInt64Ptr(c, "category_id"),
		TagSlug:    c.Query("tag"),
		Sort:       c.Query("sort"),
		Order:      c.Query("order"),
		Limit:      limit,
		Offset:     offset,
	}

	posts, err := ctrl.postService.List(c.Request.Context(), isAdmin(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": posts, "limit": limit, "offset": offset})
}

// GetPost 文章详情
// @Summary 按 ID 取文章
// @Tags Blog
// @Param id path int true "文章ID"
// @Success 200 {object} model.BlogPost
// @Router /api/blog/posts/{id} [get]
func (ctrl *BlogPostController) GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := ctrl.postService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetPostBySlug 按 slug 取文章
// @Summary 按 slug 取文章，公开读路径累加阅读数
// @Tags Blog
// @Param slug path string true "文章 slug"
// @Success 200 {object} model.BlogPost
// @Router /api/blog/posts/slug/{slug} [get]
func (ctrl *BlogPostController) GetPostBySlug(c *gin.Context) {
	post, err := ctrl.postService.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost 创建文章
// @Summary 创建文章
// @Tags Blog
// @Accept json
// @Produce json
// @Param body body dto.CreatePostReq true "文章参数"
// @Success 201 {object} model.BlogPost
// @Router /api/blog/posts [post]
func (ctrl *BlogPostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	post, err := ctrl.postService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost 更新文章
// @Summary 更新文章，作者本人或管理员
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param body body dto.UpdatePostReq true "更新参数"
// @Success 200 {object} model.BlogPost
// @Router /api/blog/posts/{id} [put]
func (ctrl *BlogPostController) UpdatePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	post, err := ctrl.postService.Update(c.Request.Context(), middleware.GetUserID(c), isAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost 删除文章
// @Summary 删除文章，作者本人或管理员
// @Tags Blog
// @Param id path int true "文章ID"
// @Success 204
// @Router /api/blog/posts/{id} [delete]
func (ctrl *BlogPostController) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.postService.Delete(c.Request.Context(), middleware.GetUserID(c), isAdmin(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
