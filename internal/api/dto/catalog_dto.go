package dto

// ==================== 品牌 ====================

// CreateBrandReq 创建品牌请求
type CreateBrandReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"` // 缺省时由 name 生成
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateBrandReq 更新品牌请求（部分更新，nil 字段不动）
type UpdateBrandReq struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ==================== 分类 ====================

// CreateCategoryReq 创建分类请求
type CreateCategoryReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ParentID    *int64 `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryReq 更新分类请求
type UpdateCategoryReq struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
