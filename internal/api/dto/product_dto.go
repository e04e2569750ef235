package dto

// ==================== 商品 ====================

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"` // 缺省时由 name 生成
	Description string `json:"description"`
	ShortDesc   string `json:"short_description"`

	BrandID    *int64 `json:"brand_id"`
	CategoryID *int64 `json:"category_id"`

	PriceAmount    int64  `json:"price_amount"` // 分
	OriginalAmount int64  `json:"original_amount"`
	Currency       string `json:"currency"`
	SKU            string `json:"sku"`
	StockQuantity  int    `json:"stock_quantity"`

	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
	SkinTypes   []string `json:"skin_types"`

	IsFeatured    bool `json:"is_featured"`
	IsNew         bool `json:"is_new"`
	IsBestSeller  bool `json:"is_best_seller"`
	IsActive      *bool `json:"is_active"`
	IsCrueltyFree bool `json:"is_cruelty_free"`
}

// UpdateProductReq 更新商品请求（部分更新）
type UpdateProductReq struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ShortDesc   *string `json:"short_description,omitempty"`

	BrandID    *int64 `json:"brand_id,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`

	PriceAmount    *int64  `json:"price_amount,omitempty"`
	OriginalAmount *int64  `json:"original_amount,omitempty"`
	SKU            *string `json:"sku,omitempty"`
	StockQuantity  *int    `json:"stock_quantity,omitempty"`

	Tags        []string `json:"tags,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	SkinTypes   []string `json:"skin_types,omitempty"`

	IsFeatured    *bool `json:"is_featured,omitempty"`
	IsNew         *bool `json:"is_new,omitempty"`
	IsBestSeller  *bool `json:"is_best_seller,omitempty"`
	IsActive      *bool `json:"is_active,omitempty"`
	IsCrueltyFree *bool `json:"is_cruelty_free,omitempty"`
}

// ==================== 商品图片 ====================

// CreateProductImageReq 新增图片请求
type CreateProductImageReq struct {
	URL       string `json:"url"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
	IsPrimary bool   `json:"is_primary"`
}

// UpdateProductImageReq 更新图片请求
type UpdateProductImageReq struct {
	URL       *string `json:"url,omitempty"`
	AltText   *string `json:"alt_text,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsPrimary *bool   `json:"is_primary,omitempty"`
}
