package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/models"
	"gorm.io/gorm"
)

// Store is the persistence collaborator the auth core depends on.
type Store interface {
	// FindUserByField loads a user by one of the whitelisted columns.
	FindUserByField(ctx context.Context, field, value string) (*models.User, error)

	// FindRefreshToken loads a refresh token by id, excluding revoked
	// (soft-deleted) rows.
	FindRefreshToken(ctx context.Context, id uuid.UUID) (*models.RefreshToken, error)

	// FindRolePermissions resolves the permission names granted to a role.
	FindRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

var userLookupFields = map[string]bool{
	"id":        true,
	"user_name": true,
	"email":     true,
}

// GormStore implements Store on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindUserByField(ctx context.Context, field, value string) (*models.User, error) {
	if !userLookupFields[field] {
		return nil, fmt.Errorf("unsupported user lookup field: %s", field)
	}
	var user models.User
	err := s.db.WithContext(ctx).Where(field+" = ?", value).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindRefreshToken(ctx context.Context, id uuid.UUID) (*models.RefreshToken, error) {
	var token models.RefreshToken
	// gorm's default scope already filters soft-deleted rows, which is
	// exactly the revocation marker.
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *GormStore) FindRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
