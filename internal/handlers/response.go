package handlers

import "github.com/gofiber/fiber/v2"

// failure writes the storefront's error envelope.
func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
