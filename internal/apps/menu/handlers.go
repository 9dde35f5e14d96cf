package menu

import (
	"errors"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/week"
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for weekly menus.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /api/menu?week=current|last|next (default current).
func (h *Handler) Get(c *fiber.Ctx) error {
	now := time.Now()
	var weekID string
	switch c.Query("week", "current") {
	case "current":
		weekID = week.CurrentID(now)
	case "last":
		weekID = week.LastID(now)
	case "next":
		weekID = week.NextID(now)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "week must be current, last or next",
		})
	}
	return h.respond(c, weekID)
}

// GetByWeek handles GET /api/menu/:weekID
func (h *Handler) GetByWeek(c *fiber.Ctx) error {
	return h.respond(c, c.Params("weekID"))
}

func (h *Handler) respond(c *fiber.Ctx, weekID string) error {
	menu, err := h.service.Week(c.Context(), weekID)
	if err != nil {
		if errors.Is(err, week.ErrBadWeekID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Invalid week id",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load menu",
		})
	}
	return c.JSON(menu)
}

// SaveWeek handles PUT /api/admin/menu/:weekID
func (h *Handler) SaveWeek(c *fiber.Ctx) error {
	var req struct {
		Days []DayMenu `json:"days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	menu, err := h.service.SaveWeek(c.Context(), c.Params("weekID"), req.Days)
	if err != nil {
		switch {
		case errors.Is(err, week.ErrBadWeekID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Invalid week id",
			})
		case errors.Is(err, ErrBadDayIndex), errors.Is(err, ErrDuplicateDay):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to save menu, please retry",
		})
	}
	return c.JSON(menu)
}
