package model

// Review 商品评论
// 同一用户对同一商品只允许一条，靠唯一索引兜底
type Review struct {
	BaseModel
	ProductID int64    `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	UserID    int64    `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`

	Rating     int    `gorm:"not null" json:"rating"` // 1-5
	Title      string `gorm:"size:255" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	IsVerified bool   `gorm:"default:false" json:"is_verified"` // 已购买验证
}

func (Review) TableName() string {
	return "reviews"
}
