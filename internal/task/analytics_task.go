package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"glowskin_dev_v1/internal/repository"
)

// AnalyticsTask 埋点日报任务
// 每天凌晨把前 24 小时的事件量按类型汇总打到日志，运营巡检用
type AnalyticsTask struct {
	AnalyticsRepo repository.AnalyticsRepository
	Cron          *cron.Cron
}

func NewAnalyticsTask(analyticsRepo repository.AnalyticsRepository) *AnalyticsTask {
	return &AnalyticsTask{
		AnalyticsRepo: analyticsRepo,
		Cron:          cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *AnalyticsTask) Start() {
	// 每天 00:05 跑一次
	_, err := t.Cron.AddFunc("0 5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.rollupJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动埋点日报任务: %v", err)
	}

	t.Cron.Start()
	log.Println("埋点日报任务已启动 (每天 00:05)")
}

// Stop 停止定时任务
func (t *AnalyticsTask) Stop() {
	t.Cron.Stop()
}

func (t *AnalyticsTask) rollupJob(ctx context.Context) {
	since := time.Now().Add(-24 * time.Hour)
	counts, err := t.AnalyticsRepo.CountAllByType(ctx, since)
	if err != nil {
		log.Printf("[Cron] 埋点日报汇总失败: %v", err)
		return
	}
	if len(counts) == 0 {
		log.Println("[Cron] 埋点日报: 过去 24 小时无事件")
		return
	}

	var total int64
	for _, count := range counts {
		total += count
	}
	log.Printf("[Cron] 埋点日报: 过去 24 小时共 %d 个事件, 按类型: %v", total, counts)
}
