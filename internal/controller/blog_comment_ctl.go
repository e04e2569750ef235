package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type BlogCommentController struct {
	commentService *service.BlogCommentService
}

func NewBlogCommentController(commentService *service.BlogCommentService) *BlogCommentController {
	return &BlogCommentController{commentService: commentService}
}

// ListComments 评论列表
// @Summary 某文章的评论，非管理员只看 approved
// @Tags BlogComment
// @Param postId path int true "文章ID"
// @Param top_level query bool false "只取一级评论"
// @Param status query string false "状态筛选，仅管理员生效"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.BlogComment
// @Router /api/blog/posts/{postId}/comments [get]
func (ctrl *BlogCommentController) ListComments(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	limit, offset := pagination(c)
	filter := repository.BlogCommentFilter{
		PostID: &postID,
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if topLevel := queryBoolPtr(c, "top_level"); topLevel != nil {
		filter.TopLevel = *topLevel
	}

	comments, err := ctrl.commentService.List(c.Request.Context(), isAdmin(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": comments, "limit": limit, "offset": offset})
}

// CreateComment 发表评论
// @Summary 发表评论，匿名必须带 author_name/author_email
// @Tags BlogComment
// @Accept json
// @Produce json
// @Param postId path int true "文章ID"
// @Param body body dto.CreateCommentReq true "评论参数"
// @Success 201 {object} model.BlogComment
// @Router /api/blog/posts/{postId}/comments [post]
func (ctrl *BlogCommentController) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	comment, err := ctrl.commentService.Create(c.Request.Context(), postID, currentUserIDPtr(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment 修改评论
// @Summary 修改评论内容，作者本人或管理员
// @Tags BlogComment
// @Accept json
// @Produce json
// @Param id path int true "评论ID"
// @Param body body dto.UpdateCommentReq true "更新参数"
// @Success 200 {object} model.BlogComment
// @Router /api/blog/comments/{id} [put]
func (ctrl *BlogCommentController) UpdateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	comment, err := ctrl.commentService.Update(c.Request.Context(), middleware.GetUserID(c), isAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ModerateComment 审核评论
// @Summary 审核评论，仅管理员
// @Tags BlogComment
// @Accept json
// @Produce json
// @Param id path int true "评论ID"
// @Param body body dto.ModerateCommentReq true "审核参数"
// @Success 200 {object} model.BlogComment
// @Router /api/blog/comments/{id}/moderate [post]
func (ctrl *BlogCommentController) ModerateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ModerateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	comment, err := ctrl.commentService.Moderate(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment 删除评论
// @Summary 删除评论，连带一层回复
// @Tags BlogComment
// @Param id path int true "评论ID"
// @Success 204
// @Router /api/blog/comments/{id} [delete]
func (ctrl *BlogCommentController) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.commentService.Delete(c.Request.Context(), middleware.GetUserID(c), isAdmin(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
