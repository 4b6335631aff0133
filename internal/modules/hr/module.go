package hr

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
)

const (
	PermRead   = "read-hr"
	PermManage = "manage-hr"
)

type HRModule struct{}

func New() *HRModule {
	return &HRModule{}
}

func (m *HRModule) ID() string { return "hr" }

func (m *HRModule) Models() []interface{} {
	return []interface{}{&Employee{}, &PayrollPeriod{}}
}

func (m *HRModule) Permissions() []string {
	return []string{PermRead, PermManage}
}

func (m *HRModule) RegisterRoutes(router fiber.Router, deps modules.Deps) {
	employeeService := NewEmployeeService(deps.DB)
	payrollService := NewPayrollService(deps.DB)
	handler := NewHRHandler(employeeService, payrollService)

	read := middleware.RequirePermission(deps.Store, PermRead)
	manage := middleware.RequirePermission(deps.Store, PermManage)

	router.Get("/employees", read, handler.ListEmployees)
	router.Get("/employees/:id", read, handler.GetEmployee)
	router.Post("/employees", manage, handler.CreateEmployee)
	router.Put("/employees/:id", manage, handler.UpdateEmployee)
	router.Delete("/employees/:id", manage, handler.DeleteEmployee)

	router.Get("/employees/:id/payroll", read, handler.ListPayroll)
	router.Post("/employees/:id/payroll", manage, handler.CreatePayroll)
	router.Put("/employees/payroll/:periodId", manage, handler.UpdatePayroll)
	router.Delete("/employees/payroll/:periodId", manage, handler.DeletePayroll)
}
