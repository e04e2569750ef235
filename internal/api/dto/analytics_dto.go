package dto

import "encoding/json"

// RecordEventReq 埋点上报请求
type RecordEventReq struct {
	PostID    int64           `json:"post_id"`
	EventType string          `json:"event_type"`
	Metadata  json.RawMessage `json:"metadata"`
}

// AnalyticsSummaryResp 单篇文章的埋点汇总
type AnalyticsSummaryResp struct {
	PostID         int64            `json:"post_id"`
	Counts         map[string]int64 `json:"counts"`
	UniqueSessions int64            `json:"unique_sessions"`

	// 滚动触达率 = scroll 事件数 / pageview 数
	Scroll50Rate  float64 `json:"scroll_50_rate"`
	Scroll100Rate float64 `json:"scroll_100_rate"`
}
