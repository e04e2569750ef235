package model

import (
	"gorm.io/datatypes"
)

// ==================== 事件类型常量 ====================

const (
	EventPageview     = "pageview"
	EventShare        = "share"
	EventProductClick = "product_click"
	EventScroll50     = "scroll_50"
	EventScroll100    = "scroll_100"
)

// IsValidEventType 是否已知事件类型
func IsValidEventType(s string) bool {
	switch s {
	case EventPageview, EventShare, EventProductClick, EventScroll50, EventScroll100:
		return true
	}
	return false
}

// BlogAnalyticsEvent 博客埋点事件，一行一个事件
type BlogAnalyticsEvent struct {
	BaseModel
	PostID    int64  `gorm:"index;not null" json:"post_id"`
	EventType string `gorm:"size:30;index;not null" json:"event_type"`

	SessionID string `gorm:"size:64;index" json:"session_id"`
	UserID    *int64 `gorm:"index" json:"user_id"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
}

func (BlogAnalyticsEvent) TableName() string {
	return "blog_analytics_events"
}
