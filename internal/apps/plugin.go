package apps

import (
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/gofiber/fiber/v2"
)

// Plugin defines the interface every app must implement.
type Plugin interface {
	// ID returns the unique app identifier.
	ID() string

	// Collections returns the document store collections the app reads and
	// writes. Used for startup logging only; collections are created lazily
	// by the store.
	Collections() []string

	// RegisterRoutes mounts app-specific routes on the given Fiber group.
	// The group is already prefixed with /api.
	RegisterRoutes(router fiber.Router, store docstore.Store, cfg *config.Config)
}

// AdminPlugin extends Plugin with admin-specific route registration.
// Plugins that implement this interface can register additional admin-only routes.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts admin-only routes on the given Fiber group.
	// The group has the admin middleware applied.
	RegisterAdminRoutes(router fiber.Router, store docstore.Store, cfg *config.Config)
}
