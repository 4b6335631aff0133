package costcenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CostCenterHandler struct {
	service *CostCenterService
}

func NewCostCenterHandler(service *CostCenterService) *CostCenterHandler {
	return &CostCenterHandler{service: service}
}

func (h *CostCenterHandler) Create(c *fiber.Ctx) error {
	var req CreateCostCenterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	cc, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeRequired), errors.Is(err, ErrNameRequired), errors.Is(err, ErrNegativeBudget):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrCodeTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to create cost center"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(cc)
}

func (h *CostCenterHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)
	items, err := h.service.List(c.UserContext(), activeOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch cost centers"})
	}
	return c.JSON(items)
}

func (h *CostCenterHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid cost center id"})
	}
	cc, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrCostCenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch cost center"})
	}
	return c.JSON(cc)
}

func (h *CostCenterHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid cost center id"})
	}
	var req UpdateCostCenterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	cc, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCostCenterNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrCodeTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrCodeRequired), errors.Is(err, ErrNameRequired), errors.Is(err, ErrNegativeBudget):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update cost center"})
		}
	}
	return c.JSON(cc)
}

func (h *CostCenterHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid cost center id"})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrCostCenterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete cost center"})
	}
	return c.JSON(fiber.Map{"message": "cost center deleted"})
}
