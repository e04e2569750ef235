package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout 下单
// @Summary 下单：扣库存、核销券、落订单
// @Tags Order
// @Accept json
// @Produce json
// @Param body body dto.CheckoutReq true "下单参数"
// @Success 201 {object} model.Order
// @Router /api/orders [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), currentOwner(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders 订单列表
// @Summary 订单列表，非管理员只能看自己的
// @Tags Order
// @Param status query string false "订单状态"
// @Param payment_status query string false "支付状态"
// @Param search query string false "订单号/邮箱搜索"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.Order
// @Router /api/orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.OrderFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Search:        c.Query("search"),
		Limit:         limit,
		Offset:        offset,
	}

	orders, err := ctrl.orderService.List(c.Request.Context(), currentOwner(c), isAdmin(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": orders, "limit": limit, "offset": offset})
}

// GetOrder 订单详情
// @Summary 按 ID 取订单
// @Tags Order
// @Param id path int true "订单ID"
// @Success 200 {object} model.Order
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Get(c.Request.Context(), currentOwner(c), isAdmin(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrderByNumber 按订单号取订单
// @Summary 按订单号取订单
// @Tags Order
// @Param number path string true "订单号"
// @Success 200 {object} model.Order
// @Router /api/orders/number/{number} [get]
func (ctrl *OrderController) GetOrderByNumber(c *gin.Context) {
	order, err := ctrl.orderService.GetByNumber(c.Request.Context(), currentOwner(c), isAdmin(c), c.Param("number"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder 管理员更新订单
// @Summary 更新订单，状态走状态机校验
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "订单ID"
// @Param body body dto.UpdateOrderReq true "更新参数"
// @Success 200 {object} model.Order
// @Router /api/orders/{id} [put]
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	order, err := ctrl.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder 取消订单
// @Summary 取消订单，回补库存并退回券核销
// @Tags Order
// @Param id path int true "订单ID"
// @Success 200 {object} model.Order
// @Router /api/orders/{id}/cancel [post]
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Cancel(c.Request.Context(), currentOwner(c), isAdmin(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ConfirmPayment 支付确认
// @Summary 支付回调确认，验签后置为已支付
// @Tags Order
// @Accept json
// @Produce json
// @Param id path int true "订单ID"
// @Param body body dto.ConfirmPaymentReq true "支付回执"
// @Success 200 {object} model.Order
// @Router /api/orders/{id}/confirm-payment [post]
func (ctrl *OrderController) ConfirmPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	order, err := ctrl.orderService.ConfirmPayment(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder 管理员删除订单
// @Summary 删除订单，连带明细
// @Tags Order
// @Param id path int true "订单ID"
// @Success 204
// @Router /api/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.orderService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OrderStats 订单状态统计
// @Summary 按状态统计订单数
// @Tags Order
// @Success 200 {object} map[string]int64
// @Router /api/orders/stats [get]
func (ctrl *OrderController) OrderStats(c *gin.Context) {
	stats, err := ctrl.orderService.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
