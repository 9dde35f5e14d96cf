package handlers

import (
	"github.com/canteen-labs/canteen-backend/internal/dto"
	"github.com/canteen-labs/canteen-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type IdentityHandler struct{}

func NewIdentityHandler() *IdentityHandler {
	return &IdentityHandler{}
}

// Mint handles POST /api/identity. First-run clients call it once, store the
// returned id locally and send it back on every request as X-Device-ID.
func (h *IdentityHandler) Mint(c *fiber.Ctx) error {
	id, err := identity.New()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mint identity",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IdentityResponse{UserID: id})
}
