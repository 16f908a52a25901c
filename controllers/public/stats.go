package public

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/services"
)

// LandingStats serves the landing page counters. Values are synthetic
// and state-free; see services.LandingStats.
func LandingStats(c *fiber.Ctx) error {
	return helpers.JSONSuccess(c, "Live stats", services.LandingStats(time.Now()))
}

func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
