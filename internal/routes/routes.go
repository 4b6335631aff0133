package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/config"
	"github.com/nvalverde/adminerp/internal/handlers"
	"github.com/nvalverde/adminerp/internal/metrics"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
	"github.com/nvalverde/adminerp/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	store auth.Store,
	authHandler *handlers.AuthHandler,
	rbacHandler *handlers.RBACHandler,
	healthHandler *handlers.HealthHandler,
	moduleList []modules.Module,
) {
	accessVerifier := auth.NewAccessVerifier([]byte(cfg.JWTAccessSecret))
	refreshVerifier := auth.NewRefreshVerifier([]byte(cfg.JWTRefreshSecret), store)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/metrics", metrics.Handler())

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Refresh and logout carry the refresh token in the body, not the
	// Authorization header. The middleware validates it against storage.
	authGroup.Post("/refresh", middleware.RequireRefreshToken(refreshVerifier), authHandler.Refresh)
	authGroup.Post("/logout", middleware.RequireRefreshToken(refreshVerifier), authHandler.Logout)

	api.Get("/auth/me", middleware.RequireAuth(accessVerifier), authHandler.Me)
	api.Put("/auth/password", middleware.RequireAuth(accessVerifier), authHandler.ChangePassword)

	// Role administration (access token + manage-roles permission)
	admin := api.Group("/admin",
		middleware.RequireAuth(accessVerifier),
		middleware.RequirePermission(store, services.PermManageRoles),
	)
	admin.Post("/roles", rbacHandler.CreateRole)
	admin.Get("/roles", rbacHandler.ListRoles)
	admin.Get("/permissions", rbacHandler.ListPermissions)
	admin.Put("/roles/:id/permissions", rbacHandler.SetRolePermissions)
	admin.Put("/users/:id/role", rbacHandler.AssignRole)

	// Business modules mount behind the access token check; each route
	// declares its own permission requirement.
	protected := api.Group("", middleware.RequireAuth(accessVerifier))
	deps := modules.Deps{DB: db, Cfg: cfg, Store: store}
	for _, m := range moduleList {
		m.RegisterRoutes(protected, deps)
	}
}
