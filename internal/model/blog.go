package model

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// ==================== 博客状态常量 ====================

// 文章状态：draft → published | scheduled → published
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusScheduled = "scheduled"
)

// IsValidPostStatus 是否已知文章状态
func IsValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished || s == PostStatusScheduled
}

// 评论审核状态：pending → approved | rejected
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
)

// IsValidCommentStatus 是否已知评论状态
func IsValidCommentStatus(s string) bool {
	return s == CommentStatusPending || s == CommentStatusApproved || s == CommentStatusRejected
}

// ==================== 博客分类与标签 ====================

// BlogCategory 博客分类
type BlogCategory struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
}

func (BlogCategory) TableName() string {
	return "blog_categories"
}

// BlogTag 博客标签
type BlogTag struct {
	BaseModel
	Name string `gorm:"size:50;not null" json:"name"`
	Slug string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (BlogTag) TableName() string {
	return "blog_tags"
}

// ==================== 文章 ====================

// readTimeWPM 阅读速度基准（词/分钟）
const readTimeWPM = 200

// BlogPost 博客文章
type BlogPost struct {
	BaseModel
	Title   string `gorm:"size:255;not null" json:"title"`
	Slug    string `gorm:"size:300;uniqueIndex;not null" json:"slug"`
	Excerpt string `gorm:"size:500" json:"excerpt"`
	Content string `gorm:"type:text" json:"content"`

	AuthorID int64 `gorm:"index;not null" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CategoryID *int64        `gorm:"index" json:"category_id"`
	Category   *BlogCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []BlogTag     `gorm:"many2many:blog_post_tags;" json:"tags,omitempty"`

	CoverImageURL string `gorm:"size:512" json:"cover_image_url"`

	// 状态机：scheduled 必须带 publish_at，定时任务到点转 published
	Status      string     `gorm:"size:20;index;default:draft" json:"status"`
	PublishAt   *time.Time `gorm:"index" json:"publish_at"`
	PublishedAt *time.Time `json:"published_at"`

	// 写入时由字数推算
	ReadTimeMinutes int   `gorm:"default:1" json:"read_time_minutes"`
	ViewCount       int64 `gorm:"default:0" json:"view_count"`

	// --- SEO 元数据 ---
	MetaTitle       string         `gorm:"size:255" json:"meta_title"`
	MetaDescription string         `gorm:"size:500" json:"meta_description"`
	MetaKeywords    pq.StringArray `gorm:"type:text[]" json:"meta_keywords"`
	CanonicalURL    string         `gorm:"size:512" json:"canonical_url"`
	OGImageURL      string         `gorm:"size:512" json:"og_image_url"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// CalcReadTime 按字数推算阅读时长（分钟），至少 1 分钟
func CalcReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readTimeWPM - 1) / readTimeWPM
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ==================== 评论 ====================

// BlogComment 博客评论，parent_comment_id 支持一层回复
type BlogComment struct {
	BaseModel
	PostID int64     `gorm:"index;not null" json:"post_id"`
	Post   *BlogPost `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// 登录用户带 user_id，匿名评论必须带 author_name/author_email
	UserID      *int64 `gorm:"index" json:"user_id"`
	AuthorName  string `gorm:"size:100" json:"author_name"`
	AuthorEmail string `gorm:"size:255" json:"author_email"`

	Content         string `gorm:"type:text;not null" json:"content"`
	ParentCommentID *int64 `gorm:"index" json:"parent_comment_id"`

	Status string `gorm:"size:20;index;default:pending" json:"status"`
}

func (BlogComment) TableName() string {
	return "blog_comments"
}
