package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/metrics"
)

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

// RequireRefreshToken verifies the refresh token from the request body. Unlike
// the access check this is stateful: the token id must resolve to a live,
// non-revoked record. Storage failures surface as 500, not 401, so clients can
// tell bad credentials from an unavailable system.
func RequireRefreshToken(verifier *auth.RefreshVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body refreshBody
		if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
			metrics.AuthFailure("refresh", "missing_token")
			return unauthorized(c, "missing refresh token")
		}

		record, err := verifier.Verify(c.UserContext(), body.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenRevoked):
				metrics.AuthFailure("refresh", "revoked")
				return unauthorized(c, "refresh token not found or revoked")
			case errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrInvalidToken):
				metrics.AuthFailure("refresh", "invalid_token")
				return unauthorized(c, "invalid or expired refresh token")
			default:
				slog.Error("refresh token lookup failed", "route", c.Path(), "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "internal server error",
				})
			}
		}

		c.Locals(localUserID, record.UserID)
		c.Locals(localRefreshTokenID, record.ID)
		return c.Next()
	}
}
