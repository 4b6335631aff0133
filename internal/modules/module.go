package modules

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/config"
	"gorm.io/gorm"
)

// Deps is handed to every module at route registration.
type Deps struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Store auth.Store
}

// Module defines the interface every business resource must implement.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// Permissions returns the permission names this module's routes require.
	// They are seeded into the permission catalog at startup.
	Permissions() []string

	// RegisterRoutes mounts the module's routes on the given router. The
	// router already has authentication middleware applied; each route
	// declares its own required permissions.
	RegisterRoutes(router fiber.Router, deps Deps)
}
