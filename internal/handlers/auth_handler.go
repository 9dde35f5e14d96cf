package handlers

import (
	"errors"

	"github.com/canteen-labs/canteen-backend/internal/dto"
	"github.com/canteen-labs/canteen-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	admin *services.AdminService
}

func NewAuthHandler(admin *services.AdminService) *AuthHandler {
	return &AuthHandler{admin: admin}
}

// AdminLogin handles POST /api/admin/login
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.admin.Verify(req.Password); err != nil {
		if errors.Is(err, services.ErrNoAdminSecret) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access is not configured",
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid password",
		})
	}

	token, err := h.admin.IssueToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to issue session",
		})
	}
	return c.JSON(dto.AdminLoginResponse{Token: token})
}
