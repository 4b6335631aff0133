package suppliers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	service *SupplierService
}

func NewSupplierHandler(service *SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	supplier, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrTaxIDRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrTaxIDTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to create supplier"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")

	resp, err := h.service.List(c.UserContext(), page, limit, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch suppliers"})
	}
	return c.JSON(resp)
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid supplier id"})
	}
	supplier, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrSupplierNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch supplier"})
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid supplier id"})
	}
	var req UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	supplier, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSupplierNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrTaxIDRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrTaxIDTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update supplier"})
		}
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid supplier id"})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrSupplierNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete supplier"})
	}
	return c.JSON(fiber.Map{"message": "supplier deleted"})
}
