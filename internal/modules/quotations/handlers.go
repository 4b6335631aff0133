package quotations

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type QuotationHandler struct {
	service *QuotationService
}

func NewQuotationHandler(service *QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var req CreateQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	q, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNumberRequired), errors.Is(err, ErrReferencesRequired), errors.Is(err, ErrInvalidItems):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrNumberTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to create quotation"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

func (h *QuotationHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	status := c.Query("status", "")

	supplierID := uuid.Nil
	if raw := c.Query("supplier_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid supplier id"})
		}
		supplierID = id
	}

	resp, err := h.service.List(c.UserContext(), page, limit, status, supplierID)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch quotations"})
	}
	return c.JSON(resp)
}

func (h *QuotationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid quotation id"})
	}
	q, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrQuotationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch quotation"})
	}
	return c.JSON(q)
}

func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid quotation id"})
	}
	var req UpdateQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	q, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuotationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrNotEditable), errors.Is(err, ErrInvalidItems):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update quotation"})
		}
	}
	return c.JSON(q)
}

func (h *QuotationHandler) Transition(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid quotation id"})
	}
	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	q, err := h.service.Transition(c.UserContext(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuotationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrIllegalTransition):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update quotation status"})
		}
	}
	return c.JSON(q)
}

func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid quotation id"})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrQuotationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete quotation"})
	}
	return c.JSON(fiber.Map{"message": "quotation deleted"})
}
