package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// ListReviews 评价列表
// @Summary 评价列表
// @Tags Review
// @Param product_id query int false "商品ID"
// @Param min_rating query int false "最低评分"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.Review
// @Router /api/reviews [get]
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.ReviewFilter{
		ProductID: queryInt64Ptr(c, "product_id"),
		MinRating: queryInt(c, "min_rating", 0),
		Limit:     limit,
		Offset:    offset,
	}

	reviews, err := ctrl.reviewService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": reviews, "limit": limit, "offset": offset})
}

// GetReview 评价详情
// @Summary 按 ID 取评价
// @Tags Review
// @Param id path int true "评价ID"
// @Success 200 {object} model.Review
// @Router /api/reviews/{id} [get]
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := ctrl.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateReview 发表评价
// @Summary 发表评价，同一用户对同一商品只能评一次
// @Tags Review
// @Accept json
// @Produce json
// @Param body body dto.CreateReviewReq true "评价参数"
// @Success 201 {object} model.Review
// @Router /api/reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var req dto.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	review, err := ctrl.reviewService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// UpdateReview 修改评价
// @Summary 修改评价，作者本人或管理员
// @Tags Review
// @Accept json
// @Produce json
// @Param id path int true "评价ID"
// @Param body body dto.UpdateReviewReq true "更新参数"
// @Success 200 {object} model.Review
// @Router /api/reviews/{id} [put]
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	review, err := ctrl.reviewService.Update(c.Request.Context(), middleware.GetUserID(c), isAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview 删除评价
// @Summary 删除评价，作者本人或管理员
// @Tags Review
// @Param id path int true "评价ID"
// @Success 204
// @Router /api/reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.Delete(c.Request.Context(), middleware.GetUserID(c), isAdmin(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
