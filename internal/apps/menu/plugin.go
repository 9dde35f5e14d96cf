package menu

import (
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for weekly menus.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "menu" }

func (p *Plugin) Collections() []string {
	return []string{docstore.CollectionWeeklyMenu}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store))
	router.Get("/menu", handler.Get)
	router.Get("/menu/:weekID", handler.GetByWeek)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store))
	router.Put("/menu/:weekID", handler.SaveWeek)
}
