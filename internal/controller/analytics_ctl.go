package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

type AnalyticsController struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// RecordEvent 上报埋点事件
// @Summary 上报博客埋点事件
// @Tags Analytics
// @Accept json
// @Produce json
// @Param body body dto.RecordEventReq true "事件参数"
// @Success 201 {object} model.BlogAnalyticsEvent
// @Router /api/blog/analytics/events [post]
func (ctrl *AnalyticsController) RecordEvent(c *gin.Context) {
	var req dto.RecordEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	event, err := ctrl.analyticsService.Record(
		c.Request.Context(),
		middleware.GetSessionID(c),
		currentUserIDPtr(c),
		req,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetSummary 埋点汇总
// @Summary 单篇文章的埋点汇总
// @Tags Analytics
// @Param postId path int true "文章ID"
// @Param since query string false "起始时间 RFC3339"
// @Success 200 {object} dto.AnalyticsSummaryResp
// @Router /api/blog/analytics/posts/{postId}/summary [get]
func (ctrl *AnalyticsController) GetSummary(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(c, "INVALID_TIME", "since must be RFC3339 formatted")
			return
		}
		since = &t
	}

	summary, err := ctrl.analyticsService.Summary(c.Request.Context(), postID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListEvents 原始事件列表
// @Summary 原始事件列表，后台排查用
// @Tags Analytics
// @Param post_id query int false "文章ID"
// @Param event_type query string false "事件类型"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} model.BlogAnalyticsEvent
// @Router /api/blog/analytics/events [get]
func (ctrl *AnalyticsController) ListEvents(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.AnalyticsFilter{
		PostID:    queryInt64Ptr(c, "post_id"),
		EventType: c.Query("event_type"),
		SessionID: c.Query("session_id"),
		Limit:     limit,
		Offset:    offset,
	}

	events, err := ctrl.analyticsService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": events, "limit": limit, "offset": offset})
}
