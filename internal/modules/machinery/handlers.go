package machinery

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MachineHandler struct {
	machineService  *MachineService
	documentService *DocumentService
}

func NewMachineHandler(machineService *MachineService, documentService *DocumentService) *MachineHandler {
	return &MachineHandler{machineService: machineService, documentService: documentService}
}

func (h *MachineHandler) Create(c *fiber.Ctx) error {
	var req CreateMachineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	machine, err := h.machineService.Create(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeRequired), errors.Is(err, ErrNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrCodeTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to create machine"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(machine)
}

func (h *MachineHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)
	machines, err := h.machineService.List(c.UserContext(), activeOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch machines"})
	}
	return c.JSON(machines)
}

func (h *MachineHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid machine id"})
	}
	machine, err := h.machineService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrMachineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch machine"})
	}
	return c.JSON(machine)
}

func (h *MachineHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid machine id"})
	}
	var req UpdateMachineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	machine, err := h.machineService.Update(c.UserContext(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMachineNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrCodeTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrCodeRequired), errors.Is(err, ErrNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update machine"})
		}
	}
	return c.JSON(machine)
}

func (h *MachineHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid machine id"})
	}
	if err := h.machineService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrMachineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete machine"})
	}
	return c.JSON(fiber.Map{"message": "machine deleted"})
}

func (h *MachineHandler) AddDocument(c *fiber.Ctx) error {
	machineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid machine id"})
	}
	var req AddDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	doc, err := h.documentService.Add(c.UserContext(), machineID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMachineNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrKindRequired), errors.Is(err, ErrIssuedRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to add document"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *MachineHandler) ListDocuments(c *fiber.Ctx) error {
	machineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid machine id"})
	}
	docs, err := h.documentService.ListByMachine(c.UserContext(), machineID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch documents"})
	}
	return c.JSON(docs)
}

func (h *MachineHandler) ExpiringDocuments(c *fiber.Ctx) error {
	within := 30 * 24 * time.Hour
	if raw := c.Query("within", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid within duration"})
		}
		within = d
	}
	docs, err := h.documentService.Expiring(c.UserContext(), within)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch expiring documents"})
	}
	return c.JSON(docs)
}

func (h *MachineHandler) DeleteDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid document id"})
	}
	if err := h.documentService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete document"})
	}
	return c.JSON(fiber.Map{"message": "document deleted"})
}
