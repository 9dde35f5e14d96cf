package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth authenticates the admin surface. Requests carrying a matching
// X-Admin-Token header pass straight through; everything else goes through
// JWT validation and the role check in AdminRequired.
func AdminAuth(cfg *config.Config) fiber.Handler {
	jwtHandler := JWTProtected(cfg)
	return func(c *fiber.Ctx) error {
		if adminTokenMatches(cfg, c) {
			return c.Next()
		}
		return jwtHandler(c)
	}
}

// AdminRequired verifies that the caller is an admin: either via the static
// token or via the "role" claim of the session JWT issued by /api/admin/login.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminTokenMatches(cfg, c) {
			return c.Next()
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		if role, _ := claims["role"].(string); role == "admin" {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

// IsAdmin reports whether the request carries admin credentials, either the
// static token or a valid admin session JWT. Used by public routes that only
// behave differently for admins, like recipe deletion.
func IsAdmin(cfg *config.Config, c *fiber.Ctx) bool {
	if adminTokenMatches(cfg, c) {
		return true
	}
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return false
	}
	token, err := jwt.Parse(strings.TrimPrefix(auth, prefix), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

func adminTokenMatches(cfg *config.Config, c *fiber.Ctx) bool {
	if cfg.AdminToken == "" {
		return false
	}
	header := c.Get("X-Admin-Token")
	return header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(cfg.AdminToken)) == 1
}
