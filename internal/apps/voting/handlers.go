package voting

import (
	"errors"

	"github.com/canteen-labs/canteen-backend/internal/middleware"
	"github.com/canteen-labs/canteen-backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the voting board.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// Board handles GET /api/board
func (h *Handler) Board(c *fiber.Ctx) error {
	board, err := h.service.Board(c.Context(), middleware.DeviceID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load board",
		})
	}
	return c.JSON(board)
}

// MyVotes handles GET /api/votes/mine
func (h *Handler) MyVotes(c *fiber.Ctx) error {
	mine, err := h.service.MyVotes(c.Context(), middleware.DeviceID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load votes",
		})
	}
	return c.JSON(fiber.Map{"votes": mine})
}

// Cast handles POST /api/votes
func (h *Handler) Cast(c *fiber.Ctx) error {
	var req struct {
		DishID string `json:"dishId" validate:"required"`
		Value  int    `json:"value" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	result, err := h.service.Cast(c.Context(), middleware.DeviceID(c), req.DishID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadValue):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		case errors.Is(err, ErrDishNotInRound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to cast vote, please retry",
		})
	}
	return c.JSON(result)
}

// SaveConfigs handles PUT /api/admin/voting-config
func (h *Handler) SaveConfigs(c *fiber.Ctx) error {
	var req struct {
		Configs []struct {
			Category string   `json:"category" validate:"required"`
			DishIDs  []string `json:"dishIds"`
		} `json:"configs" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	configs := make([]Config, 0, len(req.Configs))
	for _, in := range req.Configs {
		configs = append(configs, Config{
			Category: models.Category(in.Category),
			DishIDs:  in.DishIDs,
		})
	}

	saved, err := h.service.SaveConfigs(c.Context(), configs)
	if err != nil {
		if errors.Is(err, ErrUnknownCategory) || errors.Is(err, ErrTooManyDishes) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to save voting config, please retry",
		})
	}
	return c.JSON(fiber.Map{"configs": saved})
}

// ClearHistory handles POST /api/admin/voting/clear-history
func (h *Handler) ClearHistory(c *fiber.Ctx) error {
	deleted, err := h.service.ClearHistory(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to clear vote history",
		})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
