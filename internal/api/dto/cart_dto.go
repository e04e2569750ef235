package dto

// AddCartItemReq 加购请求
type AddCartItemReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemReq 改数量请求
type UpdateCartItemReq struct {
	Quantity int `json:"quantity"`
}

// AddWishlistItemReq 加心愿单请求
type AddWishlistItemReq struct {
	ProductID int64 `json:"product_id"`
}
