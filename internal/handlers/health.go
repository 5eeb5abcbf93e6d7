package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Health reports service liveness.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "active",
		"message":   "Payment Orchestration System API",
		"version":   Version,
		"timestamp": time.Now().UTC(),
	})
}
