package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/dto"
	"github.com/nvalverde/adminerp/internal/metrics"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid request body"})
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNameTaken), errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: err.Error()})
		case errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid request body"})
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.AuthFailure("login", "invalid_credentials")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
	}
	metrics.Login()
	return c.JSON(resp)
}

// Refresh runs after RequireRefreshToken; the verified user and token ids are
// already in locals.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "missing refresh token"})
	}
	tokenID, err := middleware.GetRefreshTokenID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "missing refresh token"})
	}

	resp, err := h.authService.Refresh(c.UserContext(), userID, tokenID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
	}
	metrics.TokenRefresh()
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tokenID, err := middleware.GetRefreshTokenID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "missing refresh token"})
	}
	if err := h.authService.Logout(c.UserContext(), tokenID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "failed to logout"})
	}
	return c.JSON(dto.MessageResponse{Message: "logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "missing authentication"})
	}
	resp, err := h.authService.Me(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "user not found"})
	}
	return c.JSON(resp)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "missing authentication"})
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid request body"})
	}
	if err := h.authService.ChangePassword(c.UserContext(), userID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: err.Error()})
		case errors.Is(err, services.ErrWeakPassword):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
		}
	}
	return c.JSON(dto.MessageResponse{Message: "password updated"})
}
