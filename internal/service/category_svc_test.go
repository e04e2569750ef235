package service

import (
	"testing"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/repository"
)

func TestCategoryService_Create_WithParent(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRepository(setupTestDB(t)))

	parent, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Skincare"})
	if err != nil {
		t.Fatalf("创建父分类失败: %v", err)
	}

	child, err := svc.Create(testCtx(), dto.CreateCategoryReq{
		Name:     "Serums",
		ParentID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("创建子分类失败: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Error("parent_id 未落库")
	}
}

func TestCategoryService_Create_ParentNotFound(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRepository(setupTestDB(t)))

	_, err := svc.Create(testCtx(), dto.CreateCategoryReq{
		Name:     "Serums",
		ParentID: int64Ptr(999),
	})
	wantCode(t, err, "PARENT_NOT_FOUND")
}

func TestCategoryService_Update_SelfParent(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRepository(setupTestDB(t)))

	category, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Skincare"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	_, err = svc.Update(testCtx(), category.ID, dto.UpdateCategoryReq{ParentID: &category.ID})
	wantCode(t, err, "INVALID_PARENT")
}

func TestCategoryService_Delete_HasChildren(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRepository(setupTestDB(t)))

	parent, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Skincare"})
	if err != nil {
		t.Fatalf("创建父分类失败: %v", err)
	}
	child, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Serums", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("创建子分类失败: %v", err)
	}

	err = svc.Delete(testCtx(), parent.ID)
	wantCode(t, err, "HAS_CHILD_CATEGORIES")

	// 先删叶子再删父
	if err := svc.Delete(testCtx(), child.ID); err != nil {
		t.Fatalf("删除子分类失败: %v", err)
	}
	if err := svc.Delete(testCtx(), parent.ID); err != nil {
		t.Fatalf("删除父分类失败: %v", err)
	}
}

func TestCategoryService_Delete_HasProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	category, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Cleansers"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	product := seedProduct(t, db, "SKU-1", 1000, 5)
	db.Model(product).Update("category_id", category.ID)

	err = svc.Delete(testCtx(), category.ID)
	wantCode(t, err, "HAS_PRODUCTS")
}

// 分类 slug 全链路：生成、查询、改名换 slug、冲突
func TestCategoryService_SlugFlow(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRepository(setupTestDB(t)))

	category, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Eye Care"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if category.Slug != "eye-care" {
		t.Errorf("slug = %s, want eye-care", category.Slug)
	}

	found, err := svc.GetBySlug(testCtx(), "eye-care")
	if err != nil {
		t.Fatalf("按 slug 查询失败: %v", err)
	}
	if found.ID != category.ID {
		t.Errorf("id = %d, want %d", found.ID, category.ID)
	}

	if _, err := svc.Update(testCtx(), category.ID, dto.UpdateCategoryReq{Slug: strPtr("eye-treatments")}); err != nil {
		t.Fatalf("更新 slug 失败: %v", err)
	}
	if _, err := svc.GetBySlug(testCtx(), "eye-care"); err == nil {
		t.Error("旧 slug 不应再能查到")
	}

	other, err := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Lip Care"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	_, err = svc.Update(testCtx(), other.ID, dto.UpdateCategoryReq{Slug: strPtr("eye-treatments")})
	wantCode(t, err, "SLUG_EXISTS")
}

func TestCategoryService_List_RootOnly(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRepository(setupTestDB(t)))

	parent, _ := svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Skincare"})
	svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Serums", ParentID: &parent.ID})
	svc.Create(testCtx(), dto.CreateCategoryReq{Name: "Makeup"})

	roots, err := svc.List(testCtx(), repository.CategoryFilter{RootOnly: true})
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("顶级分类数 = %d, want 2", len(roots))
	}
}
