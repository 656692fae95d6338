package handler

import "github.com/gofiber/fiber/v3"

// Health answers GET /health.
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "message": "RoxyDental API is running"})
}
