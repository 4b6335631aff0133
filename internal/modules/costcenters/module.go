package costcenters

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
)

const (
	PermRead   = "read-cost-centers"
	PermManage = "manage-cost-centers"
)

type CostCentersModule struct{}

func New() *CostCentersModule {
	return &CostCentersModule{}
}

func (m *CostCentersModule) ID() string { return "costcenters" }

func (m *CostCentersModule) Models() []interface{} {
	return []interface{}{&CostCenter{}}
}

func (m *CostCentersModule) Permissions() []string {
	return []string{PermRead, PermManage}
}

func (m *CostCentersModule) RegisterRoutes(router fiber.Router, deps modules.Deps) {
	service := NewCostCenterService(deps.DB)
	handler := NewCostCenterHandler(service)

	router.Get("/cost-centers", middleware.RequirePermission(deps.Store, PermRead), handler.List)
	router.Get("/cost-centers/:id", middleware.RequirePermission(deps.Store, PermRead), handler.Get)
	router.Post("/cost-centers", middleware.RequirePermission(deps.Store, PermManage), handler.Create)
	router.Put("/cost-centers/:id", middleware.RequirePermission(deps.Store, PermManage), handler.Update)
	router.Delete("/cost-centers/:id", middleware.RequirePermission(deps.Store, PermManage), handler.Delete)
}
