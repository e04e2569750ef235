package service

import (
	"testing"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

func TestReviewService_Create_RefreshesRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "REV-1", 1000, 10)

	if _, err := svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 5, Title: "great"}); err != nil {
		t.Fatalf("发表评价失败: %v", err)
	}
	if _, err := svc.Create(testCtx(), 2, dto.CreateReviewReq{ProductID: product.ID, Rating: 2}); err != nil {
		t.Fatalf("发表评价失败: %v", err)
	}

	// 评分均值与条数回写到商品
	var fresh model.Product
	db.First(&fresh, product.ID)
	if fresh.ReviewCount != 2 {
		t.Errorf("review_count = %d, want 2", fresh.ReviewCount)
	}
	if fresh.Rating != 3.5 {
		t.Errorf("rating = %v, want 3.5", fresh.Rating)
	}
}

func TestReviewService_Create_Rejections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "REV-2", 1000, 10)

	_, err := svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 0})
	wantCode(t, err, "INVALID_RATING")

	_, err = svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 6})
	wantCode(t, err, "INVALID_RATING")

	_, err = svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: 999, Rating: 4})
	wantCode(t, err, "PRODUCT_NOT_FOUND")

	// 同一用户只能评一次
	if _, err := svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 4}); err != nil {
		t.Fatalf("发表评价失败: %v", err)
	}
	_, err = svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 5})
	wantCode(t, err, "ALREADY_REVIEWED")
}

func TestReviewService_Update_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "REV-3", 1000, 10)

	review, err := svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 4})
	if err != nil {
		t.Fatalf("发表评价失败: %v", err)
	}

	// 他人不可改，管理员可以
	_, err = svc.Update(testCtx(), 2, false, review.ID, dto.UpdateReviewReq{Rating: intPtr(1)})
	wantCode(t, err, "FORBIDDEN")

	updated, err := svc.Update(testCtx(), 2, true, review.ID, dto.UpdateReviewReq{Rating: intPtr(3)})
	if err != nil {
		t.Fatalf("管理员更新失败: %v", err)
	}
	if updated.Rating != 3 {
		t.Errorf("rating = %d, want 3", updated.Rating)
	}

	var fresh model.Product
	db.First(&fresh, product.ID)
	if fresh.Rating != 3 {
		t.Errorf("商品评分 = %v, want 3", fresh.Rating)
	}
}

func TestReviewService_Delete_RefreshesRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "REV-4", 1000, 10)

	review, err := svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 5})
	if err != nil {
		t.Fatalf("发表评价失败: %v", err)
	}

	err = svc.Delete(testCtx(), 2, false, review.ID)
	wantCode(t, err, "FORBIDDEN")

	if err := svc.Delete(testCtx(), 1, false, review.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	var fresh model.Product
	db.First(&fresh, product.ID)
	if fresh.ReviewCount != 0 || fresh.Rating != 0 {
		t.Errorf("评分统计未清零: rating=%v count=%d", fresh.Rating, fresh.ReviewCount)
	}
}

func TestReviewService_List_MinRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "REV-5", 1000, 10)

	svc.Create(testCtx(), 1, dto.CreateReviewReq{ProductID: product.ID, Rating: 2})
	svc.Create(testCtx(), 2, dto.CreateReviewReq{ProductID: product.ID, Rating: 4})
	svc.Create(testCtx(), 3, dto.CreateReviewReq{ProductID: product.ID, Rating: 5})

	reviews, err := svc.List(testCtx(), repository.ReviewFilter{ProductID: &product.ID, MinRating: 4})
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if len(reviews) != 2 {
		t.Errorf("len = %d, want 2", len(reviews))
	}
}
