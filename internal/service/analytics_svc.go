package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/pkg/utils"
)

// summaryCacheTTL 汇总读接口的缓存时长
const summaryCacheTTL = 30 * time.Second

// AnalyticsService 博客埋点业务逻辑
type AnalyticsService struct {
	AnalyticsRepo repository.AnalyticsRepository
	PostRepo      repository.BlogPostRepository

	summaryCache *utils.TTLCache
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	postRepo repository.BlogPostRepository,
) *AnalyticsService {
	return &AnalyticsService{
		AnalyticsRepo: analyticsRepo,
		PostRepo:      postRepo,
		summaryCache:  utils.NewTTLCache(summaryCacheTTL),
	}
}

// Record 上报事件
func (s *AnalyticsService) Record(ctx context.Context, sessionID string, userID *int64, req dto.RecordEventReq) (*model.BlogAnalyticsEvent, error) {
	if !model.IsValidEventType(req.EventType) {
		return nil, ErrBadRequest("INVALID_EVENT_TYPE", "unknown event type")
	}

	if _, err := s.PostRepo.GetByID(ctx, req.PostID); err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("POST_NOT_FOUND", "post not found")
		}
		return nil, err
	}

	event := &model.BlogAnalyticsEvent{
		PostID:    req.PostID,
		EventType: req.EventType,
		SessionID: sessionID,
		UserID:    userID,
		Metadata:  datatypes.JSON(req.Metadata),
	}
	if err := s.AnalyticsRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Summary 单篇文章的埋点汇总，带短 TTL 缓存
func (s *AnalyticsService) Summary(ctx context.Context, postID int64, since *time.Time) (*dto.AnalyticsSummaryResp, error) {
	cacheKey := fmt.Sprintf("summary:%d", postID)
	if since == nil {
		if cached, ok := s.summaryCache.Get(cacheKey); ok {
			return cached.(*dto.AnalyticsSummaryResp), nil
		}
	}

	if _, err := s.PostRepo.GetByID(ctx, postID); err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("POST_NOT_FOUND", "post not found")
		}
		return nil, err
	}

	counts, err := s.AnalyticsRepo.CountByType(ctx, postID, since)
	if err != nil {
		return nil, err
	}
	uniqueSessions, err := s.AnalyticsRepo.CountUniqueSessions(ctx, postID, since)
	if err != nil {
		return nil, err
	}

	summary := &dto.AnalyticsSummaryResp{
		PostID:         postID,
		Counts:         counts,
		UniqueSessions: uniqueSessions,
	}
	if pageviews := counts[model.EventPageview]; pageviews > 0 {
		summary.Scroll50Rate = float64(counts[model.EventScroll50]) / float64(pageviews)
		summary.Scroll100Rate = float64(counts[model.EventScroll100]) / float64(pageviews)
	}

	if since == nil {
		s.summaryCache.Set(cacheKey, summary)
	}
	return summary, nil
}

// ListEvents 原始事件列表，后台排查用
func (s *AnalyticsService) ListEvents(ctx context.Context, filter repository.AnalyticsFilter) ([]model.BlogAnalyticsEvent, error) {
	return s.AnalyticsRepo.ListEvents(ctx, filter)
}
