package model

// CartItem 购物车项
// 匿名用户用 session_id 关联，登录用户用 user_id
// 唯一索引兜底「加购即累加」逻辑，防止并发写出重复行
type CartItem struct {
	BaseModel
	UserID    *int64 `gorm:"index;uniqueIndex:idx_cart_user_product" json:"user_id"`
	SessionID string `gorm:"size:64;index;uniqueIndex:idx_cart_session_product" json:"session_id"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_cart_user_product;uniqueIndex:idx_cart_session_product" json:"product_id"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// WishlistItem 心愿单项
type WishlistItem struct {
	BaseModel
	UserID    *int64 `gorm:"index;uniqueIndex:idx_wish_user_product" json:"user_id"`
	SessionID string `gorm:"size:64;index;uniqueIndex:idx_wish_session_product" json:"session_id"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_wish_user_product;uniqueIndex:idx_wish_session_product" json:"product_id"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
