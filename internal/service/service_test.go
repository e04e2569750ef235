package service

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"glowskin_dev_v1/internal/model"
)

// ==================== 测试辅助 ====================

// setupTestDB 内存库 + 全量建表，每个用例独立
func setupTestDB(t *testing.T) *gorm.DB {
	// 纯 :memory: 下每个连接是独立的库，事务会拿到没有表的新连接，
	// 用带名字的共享缓存内存库让同一测试的所有连接看到同一份表
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Coupon{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.BlogCategory{},
		&model.BlogTag{},
		&model.BlogPost{},
		&model.BlogComment{},
		&model.BlogAnalyticsEvent{},
	)
	if err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func boolPtr(v bool) *bool { return &v }

// seedProduct 种一个上架商品
func seedProduct(t *testing.T, db *gorm.DB, sku string, price int64, stock int) *model.Product {
	product := &model.Product{
		Name:          "Product " + sku,
		Slug:          "product-" + sku,
		PriceAmount:   price,
		Currency:      "USD",
		SKU:           sku,
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("种商品失败: %v", err)
	}
	return product
}

// seedPublishedPost 种一篇已发布文章
func seedPublishedPost(t *testing.T, db *gorm.DB, postSlug string) *model.BlogPost {
	now := db.NowFunc()
	post := &model.BlogPost{
		Title:       "Post " + postSlug,
		Slug:        postSlug,
		Content:     "some content",
		AuthorID:    1,
		Status:      model.PostStatusPublished,
		PublishedAt: &now,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("种文章失败: %v", err)
	}
	return post
}

// wantCode 断言业务错误码
func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := AsError(err)
	if !ok {
		t.Fatalf("err = %v, want 业务错误 %s", err, code)
	}
	if appErr.Code != code {
		t.Errorf("code = %s, want %s", appErr.Code, code)
	}
}

func testCtx() context.Context {
	return context.Background()
}
