package repository

import (
	"testing"

	"glowskin_dev_v1/internal/model"
)

func TestProductRepo_DecrementStock_Guard(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)

	product := &model.Product{
		Name: "Serum", Slug: "serum", SKU: "SER-1",
		PriceAmount: 1000, Currency: "USD", StockQuantity: 2, IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("种商品失败: %v", err)
	}

	// 库存不足时条件不命中，不产生负库存
	rows, err := repo.DecrementStock(repoCtx(), product.ID, 3)
	if err != nil {
		t.Fatalf("扣库存失败: %v", err)
	}
	if rows != 0 {
		t.Errorf("rows = %d, want 0", rows)
	}

	rows, err = repo.DecrementStock(repoCtx(), product.ID, 2)
	if err != nil {
		t.Fatalf("扣库存失败: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	var fresh model.Product
	db.First(&fresh, product.ID)
	if fresh.StockQuantity != 0 {
		t.Errorf("stock = %d, want 0", fresh.StockQuantity)
	}

	if err := repo.IncrementStock(repoCtx(), product.ID, 5); err != nil {
		t.Fatalf("回补库存失败: %v", err)
	}
	db.First(&fresh, product.ID)
	if fresh.StockQuantity != 5 {
		t.Errorf("stock = %d, want 5", fresh.StockQuantity)
	}
}

func TestProductRepo_RefreshRatingStats(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)

	product := &model.Product{
		Name: "Toner", Slug: "toner", SKU: "TON-1",
		PriceAmount: 1000, Currency: "USD", StockQuantity: 10, IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("种商品失败: %v", err)
	}

	db.Create(&model.Review{ProductID: product.ID, UserID: 1, Rating: 5})
	db.Create(&model.Review{ProductID: product.ID, UserID: 2, Rating: 2})

	if err := repo.RefreshRatingStats(repoCtx(), product.ID); err != nil {
		t.Fatalf("刷新评分失败: %v", err)
	}

	var fresh model.Product
	db.First(&fresh, product.ID)
	if fresh.Rating != 3.5 || fresh.ReviewCount != 2 {
		t.Errorf("rating = %v, count = %d", fresh.Rating, fresh.ReviewCount)
	}

	// 评论清空后统计归零
	db.Where("product_id = ?", product.ID).Delete(&model.Review{})
	if err := repo.RefreshRatingStats(repoCtx(), product.ID); err != nil {
		t.Fatalf("刷新评分失败: %v", err)
	}
	db.First(&fresh, product.ID)
	if fresh.Rating != 0 || fresh.ReviewCount != 0 {
		t.Errorf("rating = %v, count = %d, want 0", fresh.Rating, fresh.ReviewCount)
	}
}
