package machinery

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
)

const (
	PermRead   = "read-machinery"
	PermManage = "manage-machinery"
)

type MachineryModule struct{}

func New() *MachineryModule {
	return &MachineryModule{}
}

func (m *MachineryModule) ID() string { return "machinery" }

func (m *MachineryModule) Models() []interface{} {
	return []interface{}{&Machine{}, &MachineDocument{}}
}

func (m *MachineryModule) Permissions() []string {
	return []string{PermRead, PermManage}
}

func (m *MachineryModule) RegisterRoutes(router fiber.Router, deps modules.Deps) {
	machineService := NewMachineService(deps.DB)
	documentService := NewDocumentService(deps.DB)
	handler := NewMachineHandler(machineService, documentService)

	read := middleware.RequirePermission(deps.Store, PermRead)
	manage := middleware.RequirePermission(deps.Store, PermManage)

	// The expiring report route must register before /machines/:id.
	router.Get("/machines/documents/expiring", read, handler.ExpiringDocuments)

	router.Get("/machines", read, handler.List)
	router.Get("/machines/:id", read, handler.Get)
	router.Post("/machines", manage, handler.Create)
	router.Put("/machines/:id", manage, handler.Update)
	router.Delete("/machines/:id", manage, handler.Delete)

	router.Get("/machines/:id/documents", read, handler.ListDocuments)
	router.Post("/machines/:id/documents", manage, handler.AddDocument)
	router.Delete("/machines/documents/:docId", manage, handler.DeleteDocument)
}
