package service

import (
	"testing"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
)

func TestBlogCategoryService_CreateAndSlug(t *testing.T) {
	svc := NewBlogCategoryService(repository.NewBlogCategoryRepository(setupTestDB(t)))

	category, err := svc.Create(testCtx(), dto.CreateBlogCategoryReq{Name: "Skin Science"})
	if err != nil {
		t.Fatalf("创建博客分类失败: %v", err)
	}
	if category.Slug != "skin-science" {
		t.Errorf("slug = %s", category.Slug)
	}

	_, err = svc.Create(testCtx(), dto.CreateBlogCategoryReq{Name: "  "})
	wantCode(t, err, "MISSING_NAME")

	_, err = svc.Create(testCtx(), dto.CreateBlogCategoryReq{Name: "Other", Slug: "skin-science"})
	wantCode(t, err, "SLUG_EXISTS")
}

func TestBlogCategoryService_Delete_HasPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogCategoryService(repository.NewBlogCategoryRepository(db))

	category, err := svc.Create(testCtx(), dto.CreateBlogCategoryReq{Name: "Routines"})
	if err != nil {
		t.Fatalf("创建博客分类失败: %v", err)
	}

	post := seedPublishedPost(t, db, "categorized-post")
	db.Model(post).Update("category_id", category.ID)

	err = svc.Delete(testCtx(), category.ID)
	wantCode(t, err, "HAS_POSTS")

	// 解绑后可删
	db.Model(post).Update("category_id", nil)
	if err := svc.Delete(testCtx(), category.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	_, err = svc.Get(testCtx(), category.ID)
	wantCode(t, err, "CATEGORY_NOT_FOUND")
}

func TestBlogTagService_CreateAndUpdate(t *testing.T) {
	svc := NewBlogTagService(repository.NewBlogTagRepository(setupTestDB(t)))

	tag, err := svc.Create(testCtx(), dto.CreateBlogTagReq{Name: "Vitamin C"})
	if err != nil {
		t.Fatalf("创建标签失败: %v", err)
	}
	if tag.Slug != "vitamin-c" {
		t.Errorf("slug = %s", tag.Slug)
	}

	_, err = svc.Create(testCtx(), dto.CreateBlogTagReq{Name: "VC", Slug: "vitamin-c"})
	wantCode(t, err, "SLUG_EXISTS")

	updated, err := svc.Update(testCtx(), tag.ID, dto.UpdateBlogTagReq{Name: strPtr("Ascorbic Acid")})
	if err != nil {
		t.Fatalf("更新标签失败: %v", err)
	}
	if updated.Name != "Ascorbic Acid" || updated.Slug != "vitamin-c" {
		t.Errorf("name = %s, slug = %s", updated.Name, updated.Slug)
	}
}

func TestBlogTagService_Delete_HasPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBlogTagService(repository.NewBlogTagRepository(db))

	tag, err := svc.Create(testCtx(), dto.CreateBlogTagReq{Name: "Niacinamide"})
	if err != nil {
		t.Fatalf("创建标签失败: %v", err)
	}

	post := seedPublishedPost(t, db, "tagged-post")
	if err := db.Model(post).Association("Tags").Append(tag); err != nil {
		t.Fatalf("挂标签失败: %v", err)
	}

	err = svc.Delete(testCtx(), tag.ID)
	wantCode(t, err, "HAS_POSTS")

	if err := db.Model(post).Association("Tags").Clear(); err != nil {
		t.Fatalf("清理标签失败: %v", err)
	}
	if err := svc.Delete(testCtx(), tag.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	_, err = svc.Get(testCtx(), tag.ID)
	wantCode(t, err, "TAG_NOT_FOUND")
}
