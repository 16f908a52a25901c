package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/models"
	"playpoin/services"
)

// RateLimit applies the per-user (or per-IP, before auth) request cap.
// The rejected call reaches no handler, so it can have no side effects.
func RateLimit(guard services.RateGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if user, ok := c.Locals("user").(models.User); ok {
			key = "u:" + strconv.FormatUint(uint64(user.ID), 10)
		}

		if err := guard.Allow(key, time.Now()); err != nil {
			return helpers.ServiceError(c, err)
		}
		return c.Next()
	}
}
