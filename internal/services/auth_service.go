package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/config"
	"github.com/nvalverde/adminerp/internal/dto"
	"github.com/nvalverde/adminerp/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNameTaken      = errors.New("user name already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingFields      = errors.New("user name and email are required")
)

// DefaultRoleName is assigned to newly registered users.
const DefaultRoleName = "user"

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.UserName == "" || req.Email == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("user_name = ?", req.UserName).First(&existing).Error; err == nil {
		return nil, ErrUserNameTaken
	}
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var role models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", DefaultRoleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("default role missing: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokenPair(s.db.WithContext(ctx), &user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("user_name = ?", req.UserName).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokenPair(s.db.WithContext(ctx), &user)
}

// Refresh rotates a verified refresh token: the old row is revoked
// (soft-deleted) and a fresh pair is issued, atomically.
func (s *AuthService) Refresh(ctx context.Context, userID, tokenID uuid.UUID) (*dto.AuthResponse, error) {
	var resp *dto.AuthResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("user not found: %w", err)
		}
		if err := tx.Delete(&models.RefreshToken{}, "id = ?", tokenID).Error; err != nil {
			return err
		}
		pair, err := s.issueTokenPair(tx, &user)
		if err != nil {
			return err
		}
		resp = pair
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout revokes the verified refresh token. The row stays in storage as an
// audit record.
func (s *AuthService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.RefreshToken{}, "id = ?", tokenID).Error
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserResponse{
		ID:       user.ID,
		UserName: user.UserName,
		Email:    user.Email,
		RoleID:   user.RoleID,
	}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return ErrWeakPassword
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&user).Update("password_hash", hash).Error
}

func (s *AuthService) issueTokenPair(tx *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	now := time.Now()

	accessToken, err := auth.SignAccessToken(user, []byte(s.cfg.JWTAccessSecret), now, s.cfg.JWTAccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	refreshToken, err := auth.SignRefreshToken(user.ID, record.ID, []byte(s.cfg.JWTRefreshSecret), now, s.cfg.JWTRefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       user.ID,
			UserName: user.UserName,
			Email:    user.Email,
			RoleID:   user.RoleID,
		},
	}, nil
}
