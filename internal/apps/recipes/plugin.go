package recipes

import (
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for the recipe library.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "recipes" }

func (p *Plugin) Collections() []string {
	return []string{docstore.CollectionRecipe, docstore.CollectionRecipeSupport}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store), cfg)
	device := middleware.DeviceRequired()
	router.Get("/recipes", middleware.DeviceOptional(), handler.List)
	router.Post("/recipes", device, handler.Create)
	router.Delete("/recipes/:id", device, handler.Delete)
	router.Post("/recipes/:id/support", device, handler.Support)
}
