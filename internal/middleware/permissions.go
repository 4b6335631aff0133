package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/metrics"
)

// RequirePermission authorizes the caller against a required permission set.
// The role's granted permissions are re-resolved from storage on every
// request. Runs strictly after RequireAuth; authentication and authorization
// are never conflated.
func RequirePermission(store auth.Store, required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID, err := GetRoleID(c)
		if err != nil {
			return unauthorized(c, "missing authentication")
		}

		granted, err := store.FindRolePermissions(c.UserContext(), roleID)
		if err != nil {
			slog.Error("role permission lookup failed", "route", c.Path(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "internal server error",
			})
		}

		grantedSet := make(map[string]struct{}, len(granted))
		for _, name := range granted {
			grantedSet[name] = struct{}{}
		}
		for _, name := range required {
			if _, ok := grantedSet[name]; ok {
				return c.Next()
			}
		}

		metrics.PermissionDenied()
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": fiber.StatusForbidden,
			"data": fiber.Map{
				"message": "insufficient permissions",
			},
		})
	}
}
