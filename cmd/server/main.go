package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/canteen-labs/canteen-backend/internal/apps"
	"github.com/canteen-labs/canteen-backend/internal/apps/library"
	"github.com/canteen-labs/canteen-backend/internal/apps/menu"
	"github.com/canteen-labs/canteen-backend/internal/apps/recipes"
	"github.com/canteen-labs/canteen-backend/internal/apps/voting"
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/database"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/docstore/gormstore"
	"github.com/canteen-labs/canteen-backend/internal/docstore/leancloud"
	"github.com/canteen-labs/canteen-backend/internal/handlers"
	"github.com/canteen-labs/canteen-backend/internal/logging"
	"github.com/canteen-labs/canteen-backend/internal/middleware"
	"github.com/canteen-labs/canteen-backend/internal/routes"
	"github.com/canteen-labs/canteen-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	// .env is optional; real deployments use the environment directly
	if err := godotenv.Load(); err == nil {
		slog.Info(".env loaded")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		slog.Warn("no admin password configured; admin surface is locked")
	}

	// Persistence backend
	var store docstore.Store
	var pgLogHandler *logging.PGHandler
	cleanupDone := make(chan struct{})

	switch cfg.StoreBackend {
	case "leancloud":
		if cfg.LCAppID == "" || cfg.LCAppKey == "" || cfg.LCServerURL == "" {
			slog.Error("LC_APP_ID, LC_APP_KEY and LC_SERVER_URL are required for the leancloud backend")
			os.Exit(1)
		}
		store = leancloud.New(cfg.LCServerURL, cfg.LCAppID, cfg.LCAppKey)

	case "postgres":
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		store = gormstore.New(database.DB)

		// PostgreSQL log handler (ERROR+ async batch) and retention cleanup
		pgLogHandler = logging.NewPGHandler(database.DB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			pgLogHandler,
		)))
		logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	default:
		slog.Error("unknown STORE_BACKEND", "backend", cfg.StoreBackend)
		os.Exit(1)
	}

	// Plugins
	plugins := []apps.Plugin{
		menu.New(),
		library.New(),
		voting.New(),
		recipes.New(),
	}
	for _, p := range plugins {
		slog.Info("plugin registered", "plugin", p.ID(), "collections", p.Collections())
	}

	// Handlers
	adminService := services.NewAdminService(cfg)
	authHandler := handlers.NewAuthHandler(adminService)
	healthHandler := handlers.NewHealthHandler(cfg)
	identityHandler := handlers.NewIdentityHandler()

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

	// Routes
	routes.Setup(app, cfg, store, authHandler, healthHandler, identityHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
