package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/nvalverde/adminerp/internal/auth"
	"github.com/nvalverde/adminerp/internal/config"
	"github.com/nvalverde/adminerp/internal/database"
	"github.com/nvalverde/adminerp/internal/handlers"
	"github.com/nvalverde/adminerp/internal/logging"
	"github.com/nvalverde/adminerp/internal/metrics"
	"github.com/nvalverde/adminerp/internal/middleware"
	"github.com/nvalverde/adminerp/internal/modules"
	"github.com/nvalverde/adminerp/internal/modules/costcenters"
	"github.com/nvalverde/adminerp/internal/modules/hr"
	"github.com/nvalverde/adminerp/internal/modules/machinery"
	"github.com/nvalverde/adminerp/internal/modules/quotations"
	"github.com/nvalverde/adminerp/internal/modules/suppliers"
	"github.com/nvalverde/adminerp/internal/routes"
	"github.com/nvalverde/adminerp/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTAccessSecret == "" {
		slog.Error("JWT_ACCESS_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.JWTRefreshSecret == "" {
		slog.Error("JWT_REFRESH_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Prometheus collectors
	metrics.Init()

	// Business modules
	moduleList := []modules.Module{
		suppliers.New(),
		costcenters.New(),
		quotations.New(),
		machinery.New(),
		hr.New(),
	}

	// Migrate module models
	for _, m := range moduleList {
		if models := m.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(models))
		}
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	rbacService := services.NewRBACService(database.DB)
	store := auth.NewGormStore(database.DB)

	// Seed permission catalog and built-in roles
	permissionNames := []string{services.PermManageRoles}
	for _, m := range moduleList {
		permissionNames = append(permissionNames, m.Permissions()...)
	}
	if err := rbacService.SeedDefaults(context.Background(), permissionNames); err != nil {
		slog.Error("rbac seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("rbac seeded", "permissions", len(permissionNames))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	rbacHandler := handlers.NewRBACHandler(rbacService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(metrics.Instrument())

	// Routes
	routes.Setup(app, cfg, database.DB, store, authHandler, rbacHandler, healthHandler, moduleList)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= 500 {
		slog.Error("unhandled request error",
			"route", c.Path(),
			"method", c.Method(),
			"error", err.Error(),
		)
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}
