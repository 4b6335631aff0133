package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/dto"
	"github.com/nvalverde/adminerp/internal/services"
)

type RBACHandler struct {
	rbacService *services.RBACService
}

func NewRBACHandler(rbacService *services.RBACService) *RBACHandler {
	return &RBACHandler{rbacService: rbacService}
}

func (h *RBACHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid request body"})
	}
	role, err := h.rbacService.CreateRole(c.UserContext(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrRoleTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

func (h *RBACHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.rbacService.ListRoles(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
	}
	resp := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		perms, err := h.rbacService.RolePermissionNames(c.UserContext(), r.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
		}
		resp = append(resp, dto.RoleResponse{ID: r.ID, Name: r.Name, Permissions: perms})
	}
	return c.JSON(resp)
}

func (h *RBACHandler) ListPermissions(c *fiber.Ctx) error {
	perms, err := h.rbacService.ListPermissions(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
	}
	return c.JSON(perms)
}

func (h *RBACHandler) SetRolePermissions(c *fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid role id"})
	}
	var req dto.SetRolePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid request body"})
	}
	if err := h.rbacService.SetRolePermissions(c.UserContext(), roleID, req.Permissions); err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "role permissions updated"})
}

func (h *RBACHandler) AssignRole(c *fiber.Ctx) error {
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "invalid request body"})
	}
	if err := h.rbacService.AssignRole(c.UserContext(), req.UserID, req.RoleID); err != nil {
		switch {
		case errors.Is(err, services.ErrRoleNotFound), errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "internal server error"})
		}
	}
	return c.JSON(dto.MessageResponse{Message: "role assigned"})
}
