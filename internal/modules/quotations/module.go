package quotations

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
)

const (
	PermRead   = "read-quotations"
	PermManage = "manage-quotations"
)

type QuotationsModule struct{}

func New() *QuotationsModule {
	return &QuotationsModule{}
}

func (m *QuotationsModule) ID() string { return "quotations" }

func (m *QuotationsModule) Models() []interface{} {
	return []interface{}{&Quotation{}}
}

func (m *QuotationsModule) Permissions() []string {
	return []string{PermRead, PermManage}
}

func (m *QuotationsModule) RegisterRoutes(router fiber.Router, deps modules.Deps) {
	service := NewQuotationService(deps.DB)
	handler := NewQuotationHandler(service)

	router.Get("/quotations", middleware.RequirePermission(deps.Store, PermRead), handler.List)
	router.Get("/quotations/:id", middleware.RequirePermission(deps.Store, PermRead), handler.Get)
	router.Post("/quotations", middleware.RequirePermission(deps.Store, PermManage), handler.Create)
	router.Put("/quotations/:id", middleware.RequirePermission(deps.Store, PermManage), handler.Update)
	router.Put("/quotations/:id/status", middleware.RequirePermission(deps.Store, PermManage), handler.Transition)
	router.Delete("/quotations/:id", middleware.RequirePermission(deps.Store, PermManage), handler.Delete)
}
