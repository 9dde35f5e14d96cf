package handlers

import (
	"time"

	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/database"
	"github.com/canteen-labs/canteen-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storeStatus := h.cfg.StoreBackend
	if h.cfg.StoreBackend == "postgres" {
		if err := database.Ping(); err != nil {
			storeStatus = "postgres unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
	})
}
