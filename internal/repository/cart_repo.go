package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 归属键 ====================

// Owner 购物车/心愿单归属键：登录用户或匿名会话
type Owner struct {
	UserID    *int64
	SessionID string
}

// Valid 归属键至少要有一项
func (o Owner) Valid() bool {
	return o.UserID != nil || o.SessionID != ""
}

func ownerScope(o Owner) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if o.UserID != nil {
			return db.Where("user_id = ?", *o.UserID)
		}
		return db.Where("session_id = ?", o.SessionID)
	}
}

// ==================== 接口定义 ====================

// CartRepository 购物车仓储接口
type CartRepository interface {
	ListItems(ctx context.Context, owner Owner) ([]model.CartItem, error)
	GetItemByID(ctx context.Context, id int64) (*model.CartItem, error)
	FindItem(ctx context.Context, owner Owner, productID int64) (*model.CartItem, error)
	CreateItem(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	DeleteItem(ctx context.Context, id int64) error
	ClearOwner(ctx context.Context, owner Owner) error

	WithTx(tx *gorm.DB) CartRepository
	Transaction(ctx context.Context, fn func(txRepo CartRepository) error) error
}

// WishlistRepository 心愿单仓储接口
type WishlistRepository interface {
	ListItems(ctx context.Context, owner Owner) ([]model.WishlistItem, error)
	GetItemByID(ctx context.Context, id int64) (*model.WishlistItem, error)
	Exists(ctx context.Context, owner Owner, productID int64) (bool, error)
	CreateItem(ctx context.Context, item *model.WishlistItem) error
	DeleteItem(ctx context.Context, id int64) error
}

// ==================== 购物车实现 ====================

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListItems(ctx context.Context, owner Owner) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Product").
		Preload("Product.Images").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepo) GetItemByID(ctx context.Context, id int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).Preload("Product").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindItem(ctx context.Context, owner Owner, productID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Where("product_id = ?", productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) CreateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *cartRepo) DeleteItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

func (r *cartRepo) ClearOwner(ctx context.Context, owner Owner) error {
	return r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepo) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepo{db: tx}
}

func (r *cartRepo) Transaction(ctx context.Context, fn func(txRepo CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// ==================== 心愿单实现 ====================

type wishlistRepo struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) ListItems(ctx context.Context, owner Owner) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Product").
		Preload("Product.Images").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepo) GetItemByID(ctx context.Context, id int64) (*model.WishlistItem, error) {
	var item model.WishlistItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepo) Exists(ctx context.Context, owner Owner, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WishlistItem{}).
		Scopes(ownerScope(owner)).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

func (r *wishlistRepo) CreateItem(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepo) DeleteItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.WishlistItem{}, id).Error
}
