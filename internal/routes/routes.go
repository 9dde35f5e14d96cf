package routes

import (
	"time"

	"github.com/canteen-labs/canteen-backend/internal/apps"
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/handlers"
	"github.com/canteen-labs/canteen-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store docstore.Store,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	identityHandler *handlers.IdentityHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Device identity bootstrap (public, once per device)
	api.Post("/identity", identityHandler.Mint)

	// Admin login — stricter rate limit: 10 req/min per IP
	api.Post("/admin/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.AdminLogin)

	// Admin surface: static token or session JWT, then the role check
	admin := api.Group("/admin", middleware.AdminAuth(cfg), middleware.AdminRequired(cfg))

	for _, p := range plugins {
		p.RegisterRoutes(api, store, cfg)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, store, cfg)
		}
	}
}
