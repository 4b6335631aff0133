package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/metrics"
)

const bearerPrefix = "Bearer "

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}

// RequireAuth verifies the bearer access token and attaches the caller's
// identity to request locals. Purely cryptographic: no storage lookup.
func RequireAuth(verifier *auth.AccessVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			metrics.AuthFailure("access", "missing_header")
			return unauthorized(c, "missing authorization header")
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			metrics.AuthFailure("access", "bad_scheme")
			return unauthorized(c, "invalid or expired token")
		}

		claims, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			// Expired, malformed and wrong-signature all surface the
			// same message.
			metrics.AuthFailure("access", "invalid_token")
			return unauthorized(c, "invalid or expired token")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			metrics.AuthFailure("access", "bad_claims")
			return unauthorized(c, "invalid or expired token")
		}
		roleID, err := uuid.Parse(claims.RoleID)
		if err != nil {
			metrics.AuthFailure("access", "bad_claims")
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(localUserID, userID)
		c.Locals(localUserName, claims.UserName)
		c.Locals(localRoleID, roleID)
		return c.Next()
	}
}
