package model

import (
	"github.com/lib/pq"
)

// ==================== 商品状态常量 ====================

const (
	// 评分范围 0-5
	RatingMin = 0
	RatingMax = 5
)

// Product 商品
type Product struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"size:300;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	ShortDesc   string `gorm:"size:500" json:"short_description"`

	// --- 归属 ---
	BrandID    *int64    `gorm:"index" json:"brand_id"`
	Brand      *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CategoryID *int64    `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// --- 价格与库存（分为单位存储） ---
	PriceAmount    int64  `gorm:"not null" json:"price_amount"`
	OriginalAmount int64  `gorm:"default:0" json:"original_amount"`
	Currency       string `gorm:"size:5;default:USD" json:"currency"`
	SKU            string `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	StockQuantity  int    `gorm:"default:0" json:"stock_quantity"`

	// --- 评分（由评论聚合回写） ---
	Rating      float64 `gorm:"type:decimal(3,2);default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	// --- 功效与成分标签 (Postgres Array) ---
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Ingredients pq.StringArray `gorm:"type:text[]" json:"ingredients"`
	SkinTypes   pq.StringArray `gorm:"type:text[]" json:"skin_types"`

	// --- 展示开关 ---
	IsFeatured    bool `gorm:"default:false" json:"is_featured"`
	IsNew         bool `gorm:"default:false" json:"is_new"`
	IsBestSeller  bool `gorm:"default:false" json:"is_best_seller"`
	IsActive      bool `gorm:"default:true" json:"is_active"`
	IsCrueltyFree bool `gorm:"default:false" json:"is_cruelty_free"`

	// --- 关联 ---
	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// DiscountPercent 展示用折扣比例（原价为 0 时视为无折扣）
func (p *Product) DiscountPercent() int {
	if p.OriginalAmount <= 0 || p.OriginalAmount <= p.PriceAmount {
		return 0
	}
	return int((p.OriginalAmount - p.PriceAmount) * 100 / p.OriginalAmount)
}

// ProductImage 商品图片
type ProductImage struct {
	BaseModel
	ProductID int64    `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	URL       string   `gorm:"size:512;not null" json:"url"`
	AltText   string   `gorm:"size:255" json:"alt_text"`
	SortOrder int      `gorm:"default:99" json:"sort_order"`
	IsPrimary bool     `gorm:"default:false" json:"is_primary"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
