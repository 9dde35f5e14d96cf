package library

import (
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for the dish library.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "library" }

func (p *Plugin) Collections() []string {
	return []string{docstore.CollectionDish, docstore.CollectionVote}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store))
	router.Get("/library", handler.List)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store))
	router.Post("/dishes", handler.AddDish)
	router.Delete("/dishes/:id", handler.DeleteDish)
}
