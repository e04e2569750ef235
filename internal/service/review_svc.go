package service

import (
	"context"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// ReviewService 商品评价业务逻辑
// 每次写入后回写商品的评分均值与评价数
type ReviewService struct {
	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{ReviewRepo: reviewRepo, ProductRepo: productRepo}
}

// Create 发表评价，同一用户对同一商品只能评一次
func (s *ReviewService) Create(ctx context.Context, userID int64, req dto.CreateReviewReq) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrBadRequest("INVALID_RATING", "rating must be between 1 and 5")
	}

	if _, err := s.ProductRepo.GetByID(ctx, req.ProductID); err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("PRODUCT_NOT_FOUND", "product not found")
		}
		return nil, err
	}

	exists, err := s.ReviewRepo.ExistsForUser(ctx, req.ProductID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBadRequest("ALREADY_REVIEWED", "you have already reviewed this product")
	}

	review := &model.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.ReviewRepo.Create(ctx, review); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("ALREADY_REVIEWED", "you have already reviewed this product")
		}
		return nil, err
	}

	if err := s.ProductRepo.RefreshRatingStats(ctx, req.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// Get 按 ID 查评价
func (s *ReviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	review, err := s.ReviewRepo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("REVIEW_NOT_FOUND", "review not found")
		}
		return nil, err
	}
	return review, nil
}

// Update 修改评价，只有作者本人或管理员可改
func (s *ReviewService) Update(ctx context.Context, userID int64, isAdmin bool, id int64, req dto.UpdateReviewReq) (*model.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && review.UserID != userID {
		return nil, ErrForbidden("you can only edit your own review")
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrBadRequest("INVALID_RATING", "rating must be between 1 and 5")
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Content != nil {
		review.Content = *req.Content
	}

	if err := s.ReviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	if err := s.ProductRepo.RefreshRatingStats(ctx, review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除评价，只有作者本人或管理员可删
func (s *ReviewService) Delete(ctx context.Context, userID int64, isAdmin bool, id int64) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && review.UserID != userID {
		return ErrForbidden("you can only delete your own review")
	}

	if err := s.ReviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.ProductRepo.RefreshRatingStats(ctx, review.ProductID)
}

// List 评价列表
func (s *ReviewService) List(ctx context.Context, filter repository.ReviewFilter) ([]model.Review, error) {
	return s.ReviewRepo.List(ctx, filter)
}
