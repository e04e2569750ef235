package task

import (
	"log"

	"glowskin_dev_v1/internal/repository"
)

// ==================== TaskManager 定时任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：定时文章发布、过期优惠券停用、埋点日报
type TaskManager struct {
	publishTask   *PublishTask
	couponTask    *CouponTask
	analyticsTask *AnalyticsTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	PostRepo      repository.BlogPostRepository
	CouponRepo    repository.CouponRepository
	AnalyticsRepo repository.AnalyticsRepository
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	PublishEnabled   bool
	CouponEnabled    bool
	AnalyticsEnabled bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		PublishEnabled:   true,
		CouponEnabled:    true,
		AnalyticsEnabled: true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}
	if cfg.PublishEnabled && deps.PostRepo != nil {
		tm.publishTask = NewPublishTask(deps.PostRepo)
	}
	if cfg.CouponEnabled && deps.CouponRepo != nil {
		tm.couponTask = NewCouponTask(deps.CouponRepo)
	}
	if cfg.AnalyticsEnabled && deps.AnalyticsRepo != nil {
		tm.analyticsTask = NewAnalyticsTask(deps.AnalyticsRepo)
	}
	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动后台定时任务...")

	if tm.publishTask != nil {
		tm.publishTask.Start()
	}
	if tm.couponTask != nil {
		tm.couponTask.Start()
	}
	if tm.analyticsTask != nil {
		tm.analyticsTask.Start()
	}

	log.Println("[TaskManager] 后台定时任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	log.Println("[TaskManager] 正在停止后台定时任务...")

	if tm.publishTask != nil {
		tm.publishTask.Stop()
	}
	if tm.couponTask != nil {
		tm.couponTask.Stop()
	}
	if tm.analyticsTask != nil {
		tm.analyticsTask.Stop()
	}

	log.Println("[TaskManager] 后台定时任务已全部停止")
}

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"publish":   tm.publishTask != nil,
		"coupon":    tm.couponTask != nil,
		"analytics": tm.analyticsTask != nil,
	}
}
