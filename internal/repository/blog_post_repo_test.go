package repository

import (
	"testing"
	"time"

	"glowskin_dev_v1/internal/model"
)

func TestBlogPostRepo_ListDueScheduled(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewBlogPostRepository(db)

	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	due := &model.BlogPost{Title: "Due", Slug: "due", Content: "c", AuthorID: 1, Status: model.PostStatusScheduled, PublishAt: &past}
	notYet := &model.BlogPost{Title: "Not Yet", Slug: "not-yet", Content: "c", AuthorID: 1, Status: model.PostStatusScheduled, PublishAt: &future}
	draft := &model.BlogPost{Title: "Draft", Slug: "draft", Content: "c", AuthorID: 1, Status: model.PostStatusDraft, PublishAt: &past}
	db.Create(due)
	db.Create(notYet)
	db.Create(draft)

	posts, err := repo.ListDueScheduled(repoCtx(), now, 50)
	if err != nil {
		t.Fatalf("查询到点文章失败: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "due" {
		t.Fatalf("到点文章 = %d 篇", len(posts))
	}
}

func TestBlogPostRepo_MarkPublished(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewBlogPostRepository(db)

	now := time.Now()
	past := now.Add(-time.Minute)

	scheduled := &model.BlogPost{Title: "S", Slug: "scheduled", Content: "c", AuthorID: 1, Status: model.PostStatusScheduled, PublishAt: &past}
	draft := &model.BlogPost{Title: "D", Slug: "draft-2", Content: "c", AuthorID: 1, Status: model.PostStatusDraft}
	db.Create(scheduled)
	db.Create(draft)

	if err := repo.MarkPublished(repoCtx(), scheduled.ID, now); err != nil {
		t.Fatalf("发布失败: %v", err)
	}

	var fresh model.BlogPost
	db.First(&fresh, scheduled.ID)
	if fresh.Status != model.PostStatusPublished || fresh.PublishedAt == nil {
		t.Errorf("status = %s, published_at = %v", fresh.Status, fresh.PublishedAt)
	}

	// 只对 scheduled 状态生效
	if err := repo.MarkPublished(repoCtx(), draft.ID, now); err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	var freshDraft model.BlogPost
	db.First(&freshDraft, draft.ID)
	if freshDraft.Status != model.PostStatusDraft {
		t.Errorf("草稿被误发布: status = %s", freshDraft.Status)
	}
}
