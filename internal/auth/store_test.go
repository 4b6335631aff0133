package auth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
	))
	return db
}

func TestGormStore_FindUserByField(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	user := models.User{
		ID:           uuid.New(),
		UserName:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "x",
		RoleID:       uuid.New(),
	}
	require.NoError(t, db.Create(&user).Error)

	found, err := store.FindUserByField(ctx, "user_name", "jdoe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found, err = store.FindUserByField(ctx, "email", "jdoe@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.FindUserByField(ctx, "user_name", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_FindUserByField_RejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	store := NewGormStore(newTestDB(t))
	_, err := store.FindUserByField(context.Background(), "password_hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGormStore_FindRefreshToken_ExcludesRevoked(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	live := models.RefreshToken{ID: uuid.New(), UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	revoked := models.RefreshToken{ID: uuid.New(), UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&live).Error)
	require.NoError(t, db.Create(&revoked).Error)
	require.NoError(t, db.Delete(&models.RefreshToken{}, "id = ?", revoked.ID).Error)

	found, err := store.FindRefreshToken(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)

	_, err = store.FindRefreshToken(ctx, revoked.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The revoked row is still present as an audit record.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.RefreshToken{}).Where("id = ?", revoked.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGormStore_FindRolePermissions(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	role := models.Role{ID: uuid.New(), Name: "accountant"}
	require.NoError(t, db.Create(&role).Error)

	read := models.Permission{ID: uuid.New(), Name: "read-suppliers"}
	manage := models.Permission{ID: uuid.New(), Name: "manage-suppliers"}
	other := models.Permission{ID: uuid.New(), Name: "manage-roles"}
	require.NoError(t, db.Create(&read).Error)
	require.NoError(t, db.Create(&manage).Error)
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: read.ID}).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: manage.ID}).Error)

	names, err := store.FindRolePermissions(ctx, role.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"read-suppliers", "manage-suppliers"}, names)

	names, err = store.FindRolePermissions(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, names)
}
