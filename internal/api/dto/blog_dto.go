package dto

// ==================== 文章 ====================

// CreatePostReq 创建文章请求
type CreatePostReq struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"` // 缺省时由 title 生成
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`

	CategoryID *int64   `json:"category_id"`
	TagSlugs   []string `json:"tag_slugs"`

	CoverImageURL string `json:"cover_image_url"`

	Status    string `json:"status"`     // draft | published | scheduled
	PublishAt string `json:"publish_at"` // scheduled 必填，RFC3339

	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    []string `json:"meta_keywords"`
	CanonicalURL    string   `json:"canonical_url"`
	OGImageURL      string   `json:"og_image_url"`
}

// UpdatePostReq 更新文章请求（部分更新）
type UpdatePostReq struct {
	Title   *string `json:"title,omitempty"`
	Slug    *string `json:"slug,omitempty"`
	Excerpt *string `json:"excerpt,omitempty"`
	Content *string `json:"content,omitempty"`

	CategoryID *int64   `json:"category_id,omitempty"`
	TagSlugs   []string `json:"tag_slugs,omitempty"`

	CoverImageURL *string `json:"cover_image_url,omitempty"`

	Status    *string `json:"status,omitempty"`
	PublishAt *string `json:"publish_at,omitempty"`

	MetaTitle       *string  `json:"meta_title,omitempty"`
	MetaDescription *string  `json:"meta_description,omitempty"`
	MetaKeywords    []string `json:"meta_keywords,omitempty"`
	CanonicalURL    *string  `json:"canonical_url,omitempty"`
	OGImageURL      *string  `json:"og_image_url,omitempty"`
}

// ==================== 博客分类 / 标签 ====================

// CreateBlogCategoryReq 创建博客分类请求
type CreateBlogCategoryReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateBlogCategoryReq 更新博客分类请求
type UpdateBlogCategoryReq struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// CreateBlogTagReq 创建博客标签请求
type CreateBlogTagReq struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UpdateBlogTagReq 更新博客标签请求
type UpdateBlogTagReq struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
}

// ==================== 评论 ====================

// CreateCommentReq 发表博客评论请求
// 匿名评论必须带 author_name / author_email
type CreateCommentReq struct {
	Content         string `json:"content"`
	AuthorName      string `json:"author_name"`
	AuthorEmail     string `json:"author_email"`
	ParentCommentID *int64 `json:"parent_comment_id"`
}

// UpdateCommentReq 修改评论内容请求
type UpdateCommentReq struct {
	Content *string `json:"content,omitempty"`
}

// ModerateCommentReq 审核评论请求
type ModerateCommentReq struct {
	Status string `json:"status"` // approved | rejected
}
