package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type CouponController struct {
	couponService *service.CouponService
}

func NewCouponController(couponService *service.CouponService) *CouponController {
	return &CouponController{couponService: couponService}
}

// ListCoupons 优惠券列表
// @Summary 优惠券列表
// @Tags Coupon
// @Param search query string false "按 code/描述搜索"
// @Param is_active query bool false "启用状态"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.Coupon
// @Router /api/coupons [get]
func (ctrl *CouponController) ListCoupons(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.CouponFilter{
		Search:   c.Query("search"),
		IsActive: queryBoolPtr(c, "is_active"),
		Limit:    limit,
		Offset:   offset,
	}

	coupons, err := ctrl.couponService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": coupons, "limit": limit, "offset": offset})
}

// GetCoupon 优惠券详情
// @Summary 按 ID 取优惠券
// @Tags Coupon
// @Param id path int true "优惠券ID"
// @Success 200 {object} model.Coupon
// @Router /api/coupons/{id} [get]
func (ctrl *CouponController) GetCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	coupon, err := ctrl.couponService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// CreateCoupon 创建优惠券
// @Summary 创建优惠券
// @Tags Coupon
// @Accept json
// @Produce json
// @Param body body dto.CreateCouponReq true "优惠券参数"
// @Success 201 {object} model.Coupon
// @Router /api/coupons [post]
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	coupon, err := ctrl.couponService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon 更新优惠券
// @Summary 更新优惠券，code 不可改
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path int true "优惠券ID"
// @Param body body dto.UpdateCouponReq true "更新参数"
// @Success 200 {object} model.Coupon
// @Router /api/coupons/{id} [put]
func (ctrl *CouponController) UpdateCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	coupon, err := ctrl.couponService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon 删除优惠券
// @Summary 删除优惠券
// @Tags Coupon
// @Param id path int true "优惠券ID"
// @Success 204
// @Router /api/coupons/{id} [delete]
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.couponService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ValidateCoupon 试算优惠券
// @Summary 按 code 试算折扣，不核销
// @Tags Coupon
// @Accept json
// @Produce json
// @Param body body dto.ValidateCouponReq true "试算参数"
// @Success 200 {object} dto.CouponQuoteResp
// @Router /api/coupons/validate [post]
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	var req dto.ValidateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	quote, err := ctrl.couponService.Validate(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
