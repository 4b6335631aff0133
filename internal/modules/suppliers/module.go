package suppliers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
)

const (
	PermRead   = "read-suppliers"
	PermManage = "manage-suppliers"
)

type SuppliersModule struct{}

func New() *SuppliersModule {
	return &SuppliersModule{}
}

func (m *SuppliersModule) ID() string { return "suppliers" }

func (m *SuppliersModule) Models() []interface{} {
	return []interface{}{&Supplier{}}
}

func (m *SuppliersModule) Permissions() []string {
	return []string{PermRead, PermManage}
}

func (m *SuppliersModule) RegisterRoutes(router fiber.Router, deps modules.Deps) {
	service := NewSupplierService(deps.DB)
	handler := NewSupplierHandler(service)

	router.Get("/suppliers", middleware.RequirePermission(deps.Store, PermRead), handler.List)
	router.Get("/suppliers/:id", middleware.RequirePermission(deps.Store, PermRead), handler.Get)
	router.Post("/suppliers", middleware.RequirePermission(deps.Store, PermManage), handler.Create)
	router.Put("/suppliers/:id", middleware.RequirePermission(deps.Store, PermManage), handler.Update)
	router.Delete("/suppliers/:id", middleware.RequirePermission(deps.Store, PermManage), handler.Delete)
}
