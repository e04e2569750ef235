package service

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

func newBlogPostService(t *testing.T) (*BlogPostService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewBlogPostService(
		repository.NewBlogPostRepository(db),
		repository.NewBlogCategoryRepository(db),
		repository.NewBlogTagRepository(db),
	)
	return svc, db
}

func TestBlogPostService_Create_Draft(t *testing.T) {
	svc, _ := newBlogPostService(t)

	post, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title:   "Winter Skincare Routine",
		Content: strings.Repeat("hydrate your skin well ", 100), // 400 词
	})
	if err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}
	if post.Status != model.PostStatusDraft {
		t.Errorf("status = %s, want draft", post.Status)
	}
	if post.Slug != "winter-skincare-routine" {
		t.Errorf("slug = %s", post.Slug)
	}
	// 400 词 / 200 WPM = 2 分钟
	if post.ReadTimeMinutes != 2 {
		t.Errorf("read_time = %d, want 2", post.ReadTimeMinutes)
	}
	if post.PublishedAt != nil {
		t.Error("草稿不应有 published_at")
	}
}

func TestBlogPostService_Create_Published(t *testing.T) {
	svc, _ := newBlogPostService(t)

	post, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title:   "Published Post",
		Content: "content",
		Status:  model.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}
	if post.PublishedAt == nil {
		t.Error("published_at 未落时间")
	}
}

func TestBlogPostService_Create_Scheduled(t *testing.T) {
	svc, _ := newBlogPostService(t)

	// scheduled 必须带 publish_at
	_, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "Later", Content: "content", Status: model.PostStatusScheduled,
	})
	wantCode(t, err, "MISSING_PUBLISH_AT")

	_, err = svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "Later", Content: "content", Status: model.PostStatusScheduled,
		PublishAt: "next tuesday",
	})
	wantCode(t, err, "INVALID_TIME")

	post, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "Later", Content: "content", Status: model.PostStatusScheduled,
		PublishAt: time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("创建定时文章失败: %v", err)
	}
	if post.PublishAt == nil {
		t.Error("publish_at 未落库")
	}
}

func TestBlogPostService_Create_Refs(t *testing.T) {
	svc, db := newBlogPostService(t)

	_, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "X", Content: "c", CategoryID: int64Ptr(99),
	})
	wantCode(t, err, "CATEGORY_NOT_FOUND")

	db.Create(&model.BlogTag{Name: "Retinol", Slug: "retinol"})
	_, err = svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "X", Content: "c", TagSlugs: []string{"retinol", "missing-tag"},
	})
	wantCode(t, err, "TAG_NOT_FOUND")

	post, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "X", Content: "c", TagSlugs: []string{"retinol"},
	})
	if err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}
	if len(post.Tags) != 1 || post.Tags[0].Slug != "retinol" {
		t.Errorf("tags = %+v", post.Tags)
	}
}

func TestBlogPostService_GetBySlug_CountsViews(t *testing.T) {
	svc, _ := newBlogPostService(t)

	if _, err := svc.Create(testCtx(), 1, dto.CreatePostReq{
		Title: "Viewed", Content: "c", Status: model.PostStatusPublished,
	}); err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}

	post, err := svc.GetBySlug(testCtx(), "viewed", true)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if post.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", post.ViewCount)
	}

	// 后台读路径不计数
	post, _ = svc.GetBySlug(testCtx(), "viewed", false)
	if post.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", post.ViewCount)
	}
}

func TestBlogPostService_GetBySlug_DraftNotCounted(t *testing.T) {
	svc, _ := newBlogPostService(t)

	if _, err := svc.Create(testCtx(), 1, dto.CreatePostReq{Title: "Draft", Content: "c"}); err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}

	post, err := svc.GetBySlug(testCtx(), "draft", true)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if post.ViewCount != 0 {
		t.Errorf("草稿不应计数, view_count = %d", post.ViewCount)
	}
}

func TestBlogPostService_Update_StatusAndTags(t *testing.T) {
	svc, db := newBlogPostService(t)
	db.Create(&model.BlogTag{Name: "SPF", Slug: "spf"})

	post, err := svc.Create(testCtx(), 1, dto.CreatePostReq{Title: "WIP", Content: "short"})
	if err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}

	// 他人不可改
	_, err = svc.Update(testCtx(), 2, false, post.ID, dto.UpdatePostReq{Title: strPtr("hijack")})
	wantCode(t, err, "FORBIDDEN")

	// 没有 publish_at 不能转 scheduled
	_, err = svc.Update(testCtx(), 1, false, post.ID, dto.UpdatePostReq{Status: strPtr(model.PostStatusScheduled)})
	wantCode(t, err, "MISSING_PUBLISH_AT")

	updated, err := svc.Update(testCtx(), 1, false, post.ID, dto.UpdatePostReq{
		Status:   strPtr(model.PostStatusPublished),
		TagSlugs: []string{"spf"},
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Status != model.PostStatusPublished || updated.PublishedAt == nil {
		t.Errorf("status = %s, published_at = %v", updated.Status, updated.PublishedAt)
	}
	if len(updated.Tags) != 1 {
		t.Errorf("tags = %+v", updated.Tags)
	}
}

func TestBlogPostService_List_PublicOnlySeesPublished(t *testing.T) {
	svc, _ := newBlogPostService(t)

	svc.Create(testCtx(), 1, dto.CreatePostReq{Title: "Draft A", Content: "c"})
	svc.Create(testCtx(), 1, dto.CreatePostReq{Title: "Live B", Content: "c", Status: model.PostStatusPublished})

	public, err := svc.List(testCtx(), false, repository.BlogPostFilter{})
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Live B" {
		t.Errorf("公开列表 = %d 篇", len(public))
	}

	all, _ := svc.List(testCtx(), true, repository.BlogPostFilter{})
	if len(all) != 2 {
		t.Errorf("管理员列表 = %d 篇, want 2", len(all))
	}
}
