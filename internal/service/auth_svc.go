package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
)

// AuthService 注册 / 登录
type AuthService struct {
	UserRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{UserRepo: userRepo}
}

// TokenPair 登录结果
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

// Register 注册用户
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrBadRequest("MISSING_EMAIL", "email is required")
	}
	if len(password) < 8 {
		return nil, ErrBadRequest("INVALID_PASSWORD", "password must be at least 8 characters")
	}

	// 查重，唯一索引兜底并发穿透
	if _, err := s.UserRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrBadRequest("EMAIL_EXISTS", "email already registered")
	} else if !IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         model.RoleCustomer,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if IsDuplicate(err) {
			return nil, ErrBadRequest("EMAIL_EXISTS", "email already registered")
		}
		return nil, err
	}
	return user, nil
}

// Login 登录换取 Token 对
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized("invalid email or password")
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// Refresh 用 Refresh Token 换新 Token 对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, ErrUnauthorized("invalid refresh token")
	}

	user, err := s.UserRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrUnauthorized("user no longer exists")
		}
		return nil, err
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
