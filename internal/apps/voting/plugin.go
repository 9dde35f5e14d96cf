package voting

import (
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Plugin implements the apps.Plugin interface for popularity voting.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "voting" }

func (p *Plugin) Collections() []string {
	return []string{
		docstore.CollectionVotingConfig,
		docstore.CollectionVote,
		docstore.CollectionVoteLog,
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store))
	device := middleware.DeviceRequired()
	router.Get("/board", device, handler.Board)
	router.Get("/votes/mine", device, handler.MyVotes)
	router.Post("/votes", device, handler.Cast)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, store docstore.Store, cfg *config.Config) {
	handler := NewHandler(NewService(store))
	router.Put("/voting-config", handler.SaveConfigs)
	router.Post("/voting/clear-history", handler.ClearHistory)
}
