package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleTaken    = errors.New("role name already exists")
)

// AdminRoleName is granted every seeded permission.
const AdminRoleName = "admin"

// PermManageRoles guards the role administration endpoints.
const PermManageRoles = "manage-roles"

type RBACService struct {
	db *gorm.DB
}

func NewRBACService(db *gorm.DB) *RBACService {
	return &RBACService{db: db}
}

func (s *RBACService) CreateRole(ctx context.Context, name string) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("role name is required")
	}
	var existing models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrRoleTaken
	}
	role := models.Role{ID: uuid.New(), Name: name}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RBACService) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.WithContext(ctx).Order("name").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RBACService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	if err := s.db.WithContext(ctx).Order("name").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// SetRolePermissions replaces a role's permission set with the named
// permissions. Unknown permission names are rejected.
func (s *RBACService) SetRolePermissions(ctx context.Context, roleID uuid.UUID, names []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, "id = ?", roleID).Error; err != nil {
			return ErrRoleNotFound
		}

		var perms []models.Permission
		if len(names) > 0 {
			if err := tx.Where("name IN ?", names).Find(&perms).Error; err != nil {
				return err
			}
			if len(perms) != len(dedupe(names)) {
				return errors.New("unknown permission name in set")
			}
		}

		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		for _, p := range perms {
			link := models.RolePermission{RoleID: roleID, PermissionID: p.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *RBACService) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, "id = ?", roleID).Error; err != nil {
		return ErrRoleNotFound
	}
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SeedDefaults upserts the permission catalog and the built-in roles: admin
// gets every permission, the default user role gets the read-only subset.
func (s *RBACService) SeedDefaults(ctx context.Context, permissionNames []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range dedupe(permissionNames) {
			perm := models.Permission{ID: uuid.New(), Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
		}

		adminRole := models.Role{ID: uuid.New(), Name: AdminRoleName}
		if err := tx.Where("name = ?", AdminRoleName).FirstOrCreate(&adminRole).Error; err != nil {
			return err
		}
		userRole := models.Role{ID: uuid.New(), Name: DefaultRoleName}
		if err := tx.Where("name = ?", DefaultRoleName).FirstOrCreate(&userRole).Error; err != nil {
			return err
		}

		var perms []models.Permission
		if err := tx.Find(&perms).Error; err != nil {
			return err
		}
		for _, p := range perms {
			link := models.RolePermission{RoleID: adminRole.ID, PermissionID: p.ID}
			if err := tx.Where("role_id = ? AND permission_id = ?", adminRole.ID, p.ID).
				FirstOrCreate(&link).Error; err != nil {
				return err
			}
			if strings.HasPrefix(p.Name, "read-") {
				userLink := models.RolePermission{RoleID: userRole.ID, PermissionID: p.ID}
				if err := tx.Where("role_id = ? AND permission_id = ?", userRole.ID, p.ID).
					FirstOrCreate(&userLink).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// RolePermissionNames resolves the permission names granted to a role.
func (s *RBACService) RolePermissionNames(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Pluck("permissions.name", &names).Error
	return names, err
}

func dedupe(values []string) []string {
	set := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
