package library

import (
	"errors"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/canteen-labs/canteen-backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the dish library.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// List handles GET /api/library
func (h *Handler) List(c *fiber.Ctx) error {
	groups, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load library",
		})
	}
	return c.JSON(fiber.Map{"categories": groups})
}

// AddDish handles POST /api/admin/dishes
func (h *Handler) AddDish(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name" validate:"required,max=80"`
		Category string `json:"category" validate:"required"`
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

	dish, err := h.service.AddDish(c.Context(), req.Name, models.Category(req.Category))
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateDish):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		case errors.Is(err, ErrEmptyName), errors.Is(err, ErrBadCategory):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to save dish, please retry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dish)
}

// DeleteDish handles DELETE /api/admin/dishes/:id
func (h *Handler) DeleteDish(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteDish(c.Context(), id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Dish not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to delete dish",
		})
	}
	return c.JSON(fiber.Map{"deleted": id})
}
