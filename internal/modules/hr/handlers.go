package hr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type HRHandler struct {
	employeeService *EmployeeService
	payrollService  *PayrollService
}

func NewHRHandler(employeeService *EmployeeService, payrollService *PayrollService) *HRHandler {
	return &HRHandler{employeeService: employeeService, payrollService: payrollService}
}

func (h *HRHandler) CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	employee, err := h.employeeService.Create(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrDocumentTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to create employee"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func (h *HRHandler) ListEmployees(c *fiber.Ctx) error {
	filter := EmployeeFilter{
		ActiveOnly: c.QueryBool("active", false),
		Search:     c.Query("search", ""),
	}
	if raw := c.Query("cost_center_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid cost center id"})
		}
		filter.CostCenterID = &id
	}
	employees, err := h.employeeService.List(c.UserContext(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch employees"})
	}
	return c.JSON(employees)
}

func (h *HRHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid employee id"})
	}
	employee, err := h.employeeService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch employee"})
	}
	return c.JSON(employee)
}

func (h *HRHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid employee id"})
	}
	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	employee, err := h.employeeService.Update(c.UserContext(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmployeeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrNegativeAmount):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update employee"})
		}
	}
	return c.JSON(employee)
}

func (h *HRHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid employee id"})
	}
	if err := h.employeeService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete employee"})
	}
	return c.JSON(fiber.Map{"message": "employee deleted"})
}

func (h *HRHandler) CreatePayroll(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid employee id"})
	}
	var req CreatePayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	period, err := h.payrollService.Create(c.UserContext(), employeeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmployeeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrNegativeAmount):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrPeriodExists):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to record payroll period"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(period)
}

func (h *HRHandler) ListPayroll(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid employee id"})
	}
	year := c.QueryInt("year", 0)
	periods, err := h.payrollService.ListByEmployee(c.UserContext(), employeeID, year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to fetch payroll periods"})
	}
	return c.JSON(periods)
}

func (h *HRHandler) UpdatePayroll(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("periodId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid payroll period id"})
	}
	var req UpdatePayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}
	period, err := h.payrollService.Update(c.UserContext(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPayrollNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		case errors.Is(err, ErrNegativeAmount):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to update payroll period"})
		}
	}
	return c.JSON(period)
}

func (h *HRHandler) DeletePayroll(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("periodId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid payroll period id"})
	}
	if err := h.payrollService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrPayrollNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "failed to delete payroll period"})
	}
	return c.JSON(fiber.Map{"message": "payroll period deleted"})
}
