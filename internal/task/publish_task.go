package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"glowskin_dev_v1/internal/repository"
)

// publishBatchSize 每轮最多发布的文章数
const publishBatchSize = 50

// PublishTask 定时文章发布任务
// 把到点的 scheduled 文章转成 published
type PublishTask struct {
	PostRepo repository.BlogPostRepository
	Cron     *cron.Cron
}

func NewPublishTask(postRepo repository.BlogPostRepository) *PublishTask {
	return &PublishTask{
		PostRepo: postRepo,
		Cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *PublishTask) Start() {
	// 首次执行，补发服务重启期间错过的文章
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.publishJob(ctx)
	}()

	// 每分钟扫一次
	_, err := t.Cron.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.publishJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动文章发布定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("文章定时发布任务已启动 (每分钟检查一次)")
}

// Stop 停止定时任务
func (t *PublishTask) Stop() {
	t.Cron.Stop()
}

func (t *PublishTask) publishJob(ctx context.Context) {
	now := time.Now()
	posts, err := t.PostRepo.ListDueScheduled(ctx, now, publishBatchSize)
	if err != nil {
		log.Printf("[Cron] 待发布文章查询失败: %v", err)
		return
	}
	if len(posts) == 0 {
		return
	}

	published := 0
	for _, post := range posts {
		// MarkPublished 带状态条件，并发下只有一个实例会成功
		if err := t.PostRepo.MarkPublished(ctx, post.ID, now); err != nil {
			log.Printf("[Cron] 文章 [%s] 发布失败: %v", post.Slug, err)
			continue
		}
		published++
	}
	log.Printf("[Cron] 本轮发布了 %d 篇定时文章", published)
}
