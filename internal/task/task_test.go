package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.BlogPost{}, &model.Coupon{}, &model.BlogAnalyticsEvent{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

func TestPublishTask_PublishJob(t *testing.T) {
	db := setupTaskTestDB(t)
	task := NewPublishTask(repository.NewBlogPostRepository(db))

	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	due := &model.BlogPost{Title: "Due", Slug: "due", Content: "c", AuthorID: 1, Status: model.PostStatusScheduled, PublishAt: &past}
	notYet := &model.BlogPost{Title: "Later", Slug: "later", Content: "c", AuthorID: 1, Status: model.PostStatusScheduled, PublishAt: &future}
	db.Create(due)
	db.Create(notYet)

	task.publishJob(context.Background())

	var freshDue model.BlogPost
	db.First(&freshDue, due.ID)
	if freshDue.Status != model.PostStatusPublished || freshDue.PublishedAt == nil {
		t.Errorf("到点文章未发布: status = %s", freshDue.Status)
	}

	var freshNotYet model.BlogPost
	db.First(&freshNotYet, notYet.ID)
	if freshNotYet.Status != model.PostStatusScheduled {
		t.Errorf("未到点文章被误发布: status = %s", freshNotYet.Status)
	}
}

func TestCouponTask_DeactivateJob(t *testing.T) {
	db := setupTaskTestDB(t)
	task := NewCouponTask(repository.NewCouponRepository(db))

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := &model.Coupon{Code: "OLD", DiscountType: model.DiscountTypeFixed, DiscountValue: 100, ValidUntil: &past, IsActive: true}
	active := &model.Coupon{Code: "NEW", DiscountType: model.DiscountTypeFixed, DiscountValue: 100, ValidUntil: &future, IsActive: true}
	db.Create(expired)
	db.Create(active)

	task.deactivateJob(context.Background())

	var freshExpired model.Coupon
	db.First(&freshExpired, expired.ID)
	if freshExpired.IsActive {
		t.Error("过期券未被停用")
	}
	var freshActive model.Coupon
	db.First(&freshActive, active.ID)
	if !freshActive.IsActive {
		t.Error("有效券被误停用")
	}
}

func TestAnalyticsTask_RollupCounts(t *testing.T) {
	db := setupTaskTestDB(t)
	task := NewAnalyticsTask(repository.NewAnalyticsRepository(db))

	db.Create(&model.BlogAnalyticsEvent{PostID: 1, EventType: model.EventPageview, SessionID: "s1"})
	db.Create(&model.BlogAnalyticsEvent{PostID: 1, EventType: model.EventPageview, SessionID: "s2"})
	db.Create(&model.BlogAnalyticsEvent{PostID: 1, EventType: model.EventShare, SessionID: "s1"})

	counts, err := task.AnalyticsRepo.CountAllByType(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("日报汇总失败: %v", err)
	}
	if counts[model.EventPageview] != 2 || counts[model.EventShare] != 1 {
		t.Errorf("counts = %v", counts)
	}

	// 汇总窗口之外的事件不计入
	counts, err = task.AnalyticsRepo.CountAllByType(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("日报汇总失败: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("未来窗口 counts = %v, want 空", counts)
	}

	task.rollupJob(context.Background())
}

func TestNewTaskManager_RespectsConfig(t *testing.T) {
	db := setupTaskTestDB(t)
	deps := &TaskManagerDeps{
		PostRepo:      repository.NewBlogPostRepository(db),
		CouponRepo:    repository.NewCouponRepository(db),
		AnalyticsRepo: repository.NewAnalyticsRepository(db),
	}

	tm := NewTaskManager(deps, &TaskManagerConfig{PublishEnabled: true, CouponEnabled: false})
	if tm.publishTask == nil {
		t.Error("publish 任务未创建")
	}
	if tm.couponTask != nil {
		t.Error("coupon 任务不应创建")
	}
	if tm.analyticsTask != nil {
		t.Error("analytics 任务不应创建")
	}

	// nil 配置走默认全开
	tm = NewTaskManager(deps, nil)
	if tm.publishTask == nil || tm.couponTask == nil || tm.analyticsTask == nil {
		t.Error("默认配置应启用全部任务")
	}
	status := tm.Status()
	if !status["publish"] || !status["coupon"] || !status["analytics"] {
		t.Errorf("Status() = %v", status)
	}
}
