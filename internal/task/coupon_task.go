package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"glowskin_dev_v1/internal/repository"
)

// CouponTask 过期优惠券停用任务
type CouponTask struct {
	CouponRepo repository.CouponRepository
	Cron       *cron.Cron
}

func NewCouponTask(couponRepo repository.CouponRepository) *CouponTask {
	return &CouponTask{
		CouponRepo: couponRepo,
		Cron:       cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *CouponTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.deactivateJob(ctx)
	}()

	// 每小时整点扫一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.deactivateJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动优惠券过期任务: %v", err)
	}

	t.Cron.Start()
	log.Println("优惠券过期任务已启动 (每小时检查一次)")
}

// Stop 停止定时任务
func (t *CouponTask) Stop() {
	t.Cron.Stop()
}

func (t *CouponTask) deactivateJob(ctx context.Context) {
	count, err := t.CouponRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("[Cron] 过期优惠券停用失败: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[Cron] 停用了 %d 张过期优惠券", count)
	}
}
