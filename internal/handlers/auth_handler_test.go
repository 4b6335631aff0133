package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/config"
	"github.com/nvalverde/adminerp/internal/dto"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/models"
	"github.com/nvalverde/adminerp/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newAuthTestApp wires the auth surface end to end against an in-memory
// database: public register/login, refresh and logout behind the refresh
// token check, me behind the access token check.
func newAuthTestApp(t *testing.T) *fiber.App {
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

	cfg := &config.Config{
		JWTAccessSecret:  "access-test-secret",
		JWTRefreshSecret: "refresh-test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}

	require.NoError(t, services.NewRBACService(db).SeedDefaults(context.Background(), []string{
		services.PermManageRoles, "read-suppliers",
	}))

	handler := NewAuthHandler(services.NewAuthService(db, cfg))
	store := auth.NewGormStore(db)
	accessVerifier := auth.NewAccessVerifier([]byte(cfg.JWTAccessSecret))
	refreshVerifier := auth.NewRefreshVerifier([]byte(cfg.JWTRefreshSecret), store)

	app := fiber.New()
	app.Post("/auth/register", handler.Register)
	app.Post("/auth/login", handler.Login)
	app.Post("/auth/refresh", middleware.RequireRefreshToken(refreshVerifier), handler.Refresh)
	app.Post("/auth/logout", middleware.RequireRefreshToken(refreshVerifier), handler.Logout)
	app.Get("/auth/me", middleware.RequireAuth(accessVerifier), handler.Me)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func registerUser(t *testing.T, app *fiber.App) dto.AuthResponse {
	t.Helper()

	status, body := postJSON(t, app, "/auth/register", dto.RegisterRequest{
		UserName: "jdoe",
		Email:    "jdoe@example.com",
		Password: "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp(t)
	resp := registerUser(t, app)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	status, _ := postJSON(t, app, "/auth/register", dto.RegisterRequest{
		UserName: "jdoe", Email: "other@example.com", Password: "supersecret",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body := postJSON(t, app, "/auth/login", dto.LoginRequest{UserName: "jdoe", Password: "supersecret"})
	assert.Equal(t, fiber.StatusOK, status)
	var login dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, "jdoe", login.User.UserName)

	status, _ = postJSON(t, app, "/auth/login", dto.LoginRequest{UserName: "jdoe", Password: "wrongpassword"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp(t)
	resp := registerUser(t, app)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&me))
	assert.Equal(t, "jdoe", me.UserName)

	res, err = app.Test(httptest.NewRequest("GET", "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestAuthHandler_RefreshRotation(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp(t)
	resp := registerUser(t, app)

	status, body := postJSON(t, app, "/auth/refresh", dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Equal(t, fiber.StatusOK, status)

	var rotated dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &rotated))
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// Replaying the rotated-out token fails closed.
	status, body = postJSON(t, app, "/auth/refresh", dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "refresh token not found or revoked", msg.Message)

	// The new token still works.
	status, _ = postJSON(t, app, "/auth/refresh", dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	app := newAuthTestApp(t)
	resp := registerUser(t, app)

	status, _ := postJSON(t, app, "/auth/logout", dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.Equal(t, fiber.StatusOK, status)

	// The revoked token cannot refresh or log out again.
	status, _ = postJSON(t, app, "/auth/refresh", dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// The stateless access token keeps working until it expires.
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
