package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/service"
)

type CartController struct {
	cartService     *service.CartService
	wishlistService *service.WishlistService
}

func NewCartController(cartService *service.CartService, wishlistService *service.WishlistService) *CartController {
	return &CartController{cartService: cartService, wishlistService: wishlistService}
}

// ==================== 购物车 ====================

// ListCartItems 购物车列表
// @Summary 当前用户/会话的购物车
// @Tags Cart
// @Success 200 {array} model.CartItem
// @Router /api/cart-items [get]
func (ctrl *CartController) ListCartItems(c *gin.Context) {
	items, err := ctrl.cartService.List(c.Request.Context(), currentOwner(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddCartItem 加购
// @Summary 加购，同商品累加数量
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body dto.AddCartItemReq true "加购参数"
// @Success 201 {object} model.CartItem
// @Router /api/cart-items [post]
func (ctrl *CartController) AddCartItem(c *gin.Context) {
	var req dto.AddCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	item, err := ctrl.cartService.Add(c.Request.Context(), currentOwner(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateCartItem 改数量
// @Summary 改购物车条目数量，0 视为删除
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "条目ID"
// @Param body body dto.UpdateCartItemReq true "数量参数"
// @Success 200 {object} model.CartItem
// @Router /api/cart-items/{id} [put]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), currentOwner(c), id, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	if item == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveCartItem 移除条目
// @Summary 移除购物车条目
// @Tags Cart
// @Param id path int true "条目ID"
// @Success 204
// @Router /api/cart-items/{id} [delete]
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.Remove(c.Request.Context(), currentOwner(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCart 清空购物车
// @Summary 清空当前购物车
// @Tags Cart
// @Success 204
// @Router /api/cart-items [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.Clear(c.Request.Context(), currentOwner(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ==================== 心愿单 ====================

// ListWishlistItems 心愿单列表
// @Summary 当前用户/会话的心愿单
// @Tags Wishlist
// @Success 200 {array} model.WishlistItem
// @Router /api/wishlist-items [get]
func (ctrl *CartController) ListWishlistItems(c *gin.Context) {
	items, err := ctrl.wishlistService.List(c.Request.Context(), currentOwner(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddWishlistItem 加心愿单
// @Summary 加入心愿单，重复加入报错
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param body body dto.AddWishlistItemReq true "加心愿单参数"
// @Success 201 {object} model.WishlistItem
// @Router /api/wishlist-items [post]
func (ctrl *CartController) AddWishlistItem(c *gin.Context) {
	var req dto.AddWishlistItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	item, err := ctrl.wishlistService.Add(c.Request.Context(), currentOwner(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveWishlistItem 移除心愿单条目
// @Summary 移除心愿单条目
// @Tags Wishlist
// @Param id path int true "条目ID"
// @Success 204
// @Router /api/wishlist-items/{id} [delete]
func (ctrl *CartController) RemoveWishlistItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.wishlistService.Remove(c.Request.Context(), currentOwner(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
