package service

import (
	"context"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// CartService 购物车业务逻辑
type CartService struct {
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{CartRepo: cartRepo, ProductRepo: productRepo}
}

// List 按归属取购物车明细
func (s *CartService) List(ctx context.Context, owner repository.Owner) ([]model.CartItem, error) {
	if !owner.Valid() {
		return nil, ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
	}
	return s.CartRepo.ListItems(ctx, owner)
}

// Add 加购：同商品已在购物车时累加数量
// 事务 + (owner, product) 唯一索引兜底并发双写
func (s *CartService) Add(ctx context.Context, owner repository.Owner, req dto.AddCartItemReq) (*model.CartItem, error) {
	if !owner.Valid() {
		return nil, ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
	}
	if req.Quantity <= 0 {
		return nil, ErrBadRequest("INVALID_QUANTITY", "quantity must be positive")
	}

	product, err := s.ProductRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("PRODUCT_NOT_FOUND", "product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrBadRequest("PRODUCT_INACTIVE", "product is not available")
	}

	var itemID int64
	err = s.CartRepo.Transaction(ctx, func(txRepo repository.CartRepository) error {
		existing, err := txRepo.FindItem(ctx, owner, req.ProductID)
		if err == nil {
			itemID = existing.ID
			return txRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+req.Quantity)
		}
		if !IsNotFound(err) {
			return err
		}

		item := &model.CartItem{
			UserID:    owner.UserID,
			SessionID: sessionOnly(owner),
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := txRepo.CreateItem(ctx, item); err != nil {
			return err
		}
		itemID = item.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.CartRepo.GetItemByID(ctx, itemID)
}

// UpdateQuantity 改数量，0 视为删除
func (s *CartService) UpdateQuantity(ctx context.Context, owner repository.Owner, itemID int64, quantity int) (*model.CartItem, error) {
	if quantity < 0 {
		return nil, ErrBadRequest("INVALID_QUANTITY", "quantity must not be negative")
	}

	item, err := s.getOwnedItem(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		if err := s.CartRepo.DeleteItem(ctx, item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.CartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	return s.CartRepo.GetItemByID(ctx, item.ID)
}

// Remove 移除单条
func (s *CartService) Remove(ctx context.Context, owner repository.Owner, itemID int64) error {
	item, err := s.getOwnedItem(ctx, owner, itemID)
	if err != nil {
		return err
	}
	return s.CartRepo.DeleteItem(ctx, item.ID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, owner repository.Owner) error {
	if !owner.Valid() {
		return ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
	}
	return s.CartRepo.ClearOwner(ctx, owner)
}

// getOwnedItem 归属校验：越权访问按不存在处理
func (s *CartService) getOwnedItem(ctx context.Context, owner repository.Owner, itemID int64) (*model.CartItem, error) {
	item, err := s.CartRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("CART_ITEM_NOT_FOUND", "cart item not found")
		}
		return nil, err
	}
	if !ownerMatches(owner, item.UserID, item.SessionID) {
		return nil, ErrNotFound("CART_ITEM_NOT_FOUND", "cart item not found")
	}
	return item, nil
}

// sessionOnly 登录用户的行不落 session_id，避免换会话后丢购物车
func sessionOnly(owner repository.Owner) string {
	if owner.UserID != nil {
		return ""
	}
	return owner.SessionID
}

func ownerMatches(owner repository.Owner, userID *int64, sessionID string) bool {
	if owner.UserID != nil {
		return userID != nil && *userID == *owner.UserID
	}
	return sessionID != "" && sessionID == owner.SessionID
}

// ==================== 心愿单 ====================

// WishlistService 心愿单业务逻辑
type WishlistService struct {
	WishlistRepo repository.WishlistRepository
	ProductRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{WishlistRepo: wishlistRepo, ProductRepo: productRepo}
}

// List 按归属取心愿单
func (s *WishlistService) List(ctx context.Context, owner repository.Owner) ([]model.WishlistItem, error) {
	if !owner.Valid() {
		return nil, ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
	}
	return s.WishlistRepo.ListItems(ctx, owner)
}

// Add 加入心愿单，重复加入报错
func (s *WishlistService) Add(ctx context.Context, owner repository.Owner, req dto.AddWishlistItemReq) (*model.WishlistItem, error) {
	if !owner.Valid() {
		return nil, ErrBadRequest("MISSING_IDENTITY", "user or session identity is required")
	}

	if _, err := s.ProductRepo.GetByID(ctx, req.ProductID); err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("PRODUCT_NOT_FOUND", "product not found")
		}
		return nil, err
	}

	exists, err := s.WishlistRepo.Exists(ctx, owner, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBadRequest("ALREADY_IN_WISHLIST", "product already in wishlist")
	}

	item := &model.WishlistItem{
		UserID:    owner.UserID,
		SessionID: sessionOnly(owner),
		ProductID: req.ProductID,
	}
	if err := s.WishlistRepo.CreateItem(ctx, item); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("ALREADY_IN_WISHLIST", "product already in wishlist")
		}
		return nil, err
	}
	return item, nil
}

// Remove 移除心愿单条目
func (s *WishlistService) Remove(ctx context.Context, owner repository.Owner, itemID int64) error {
	item, err := s.WishlistRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if IsNotFound(err) {
			return ErrNotFound("WISHLIST_ITEM_NOT_FOUND", "wishlist item not found")
		}
		return err
	}
	if !ownerMatches(owner, item.UserID, item.SessionID) {
		return ErrNotFound("WISHLIST_ITEM_NOT_FOUND", "wishlist item not found")
	}
	return s.WishlistRepo.DeleteItem(ctx, item.ID)
}
