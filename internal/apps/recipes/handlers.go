package recipes

import (
	"errors"

	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the recipe library.
type Handler struct {
	service  *Service
	cfg      *config.Config
	validate *validator.Validate
}

func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{service: service, cfg: cfg, validate: validator.New()}
}

// List handles GET /api/recipes
func (h *Handler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context(), middleware.DeviceID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to load recipes",
		})
	}
	return c.JSON(fiber.Map{"recipes": views})
}

// Create handles POST /api/recipes
func (h *Handler) Create(c *fiber.Ctx) error {
	var req struct {
		Name        string       `json:"name" validate:"required,max=120"`
		Ingredients []Ingredient `json:"ingredients"`
		Steps       []string     `json:"steps"`
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

	recipe, err := h.service.Create(c.Context(), middleware.DeviceID(c), req.Name, req.Ingredients, req.Steps)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNoIngredients), errors.Is(err, ErrNoSteps):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to save recipe, please retry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// Delete handles DELETE /api/recipes/:id
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	isAdmin := middleware.IsAdmin(h.cfg, c)

	err := h.service.Delete(c.Context(), id, middleware.DeviceID(c), isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecipeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		case errors.Is(err, ErrNotAuthor):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to delete recipe",
		})
	}
	return c.JSON(fiber.Map{"deleted": id})
}

// Support handles POST /api/recipes/:id/support
func (h *Handler) Support(c *fiber.Ctx) error {
	created, err := h.service.Support(c.Context(), c.Params("id"), middleware.DeviceID(c))
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to record support, please retry",
		})
	}
	return c.JSON(fiber.Map{"supported": true, "created": created})
}
