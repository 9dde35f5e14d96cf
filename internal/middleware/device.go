package middleware

import (
	"github.com/canteen-labs/canteen-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const maxDeviceIDLength = 64

// DeviceRequired extracts the opaque per-device identifier from the
// X-Device-ID header. The id is minted once per device via POST /api/identity
// and persisted client-side; it is an explicit value on the request, never a
// server-side global.
func DeviceRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Device-ID")
		if id == "" || len(id) > maxDeviceIDLength {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "X-Device-ID header is required",
			})
		}
		c.Locals("device_id", id)
		return c.Next()
	}
}

// DeviceOptional records the device id when the header is present but lets
// anonymous requests through. Listing routes use it to scope viewer flags
// without locking out first-run clients.
func DeviceOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get("X-Device-ID"); id != "" && len(id) <= maxDeviceIDLength {
			c.Locals("device_id", id)
		}
		return c.Next()
	}
}

// DeviceID returns the identifier set by DeviceRequired, or "" when the route
// did not pass through it.
func DeviceID(c *fiber.Ctx) string {
	if id, ok := c.Locals("device_id").(string); ok {
		return id
	}
	return ""
}
