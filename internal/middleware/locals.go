package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID         = "user_id"
	localUserName       = "user_name"
	localRoleID         = "role_id"
	localRefreshTokenID = "refresh_token_id"
)

// GetUserID extracts the authenticated user id from context locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(localUserID).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, errors.New("no authenticated user in context")
}

// GetRoleID extracts the caller's role id from context locals.
func GetRoleID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(localRoleID).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, errors.New("no role in context")
}

// GetUserName extracts the caller's user name from context locals.
func GetUserName(c *fiber.Ctx) string {
	if name, ok := c.Locals(localUserName).(string); ok {
		return name
	}
	return ""
}

// GetRefreshTokenID extracts the verified refresh token id from context locals.
func GetRefreshTokenID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(localRefreshTokenID).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, errors.New("no refresh token in context")
}
