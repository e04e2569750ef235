package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// AnalyticsRepository 博客埋点仓储接口
type AnalyticsRepository interface {
	CreateEvent(ctx context.Context, event *model.BlogAnalyticsEvent) error
	ListEvents(ctx context.Context, filter AnalyticsFilter) ([]model.BlogAnalyticsEvent, error)

	// 聚合统计：按事件类型计数 + 去重会话数
	CountByType(ctx context.Context, postID int64, since *time.Time) (map[string]int64, error)
	CountUniqueSessions(ctx context.Context, postID int64, since *time.Time) (int64, error)

	// CountAllByType 全站事件按类型计数，日报任务用
	CountAllByType(ctx context.Context, since time.Time) (map[string]int64, error)
}

// AnalyticsFilter 事件过滤条件
type AnalyticsFilter struct {
	PostID    *int64
	EventType string
	SessionID string
	Since     *time.Time
	Limit     int
	Offset    int
}

// ==================== 仓储实现 ====================

type analyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建埋点仓储
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) CreateEvent(ctx context.Context, event *model.BlogAnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *analyticsRepo) ListEvents(ctx context.Context, filter AnalyticsFilter) ([]model.BlogAnalyticsEvent, error) {
	var events []model.BlogAnalyticsEvent

	query := r.db.WithContext(ctx).Model(&model.BlogAnalyticsEvent{})
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	err := query.
		Order("created_at DESC").
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&events).Error
	return events, err
}

func (r *analyticsRepo) scope(ctx context.Context, postID int64, since *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.BlogAnalyticsEvent{}).
		Where("post_id = ?", postID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	return query
}

func (r *analyticsRepo) CountByType(ctx context.Context, postID int64, since *time.Time) (map[string]int64, error) {
	type result struct {
		EventType string
		Count     int64
	}
	var results []result

	err := r.scope(ctx, postID, since).
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, row := range results {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepo) CountAllByType(ctx context.Context, since time.Time) (map[string]int64, error) {
	type result struct {
		EventType string
		Count     int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.BlogAnalyticsEvent{}).
		Where("created_at >= ?", since).
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, row := range results {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepo) CountUniqueSessions(ctx context.Context, postID int64, since *time.Time) (int64, error) {
	var count int64
	err := r.scope(ctx, postID, since).
		Where("session_id != ''").
		Distinct("session_id").
		Count(&count).Error
	return count, err
}
