package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"playpoin/helpers"
	"playpoin/models"
	"playpoin/services"
)

// UserAuth validates the bearer token and loads the account into
// c.Locals("user"). Suspended and banned users still authenticate; the
// core rejects their accrual and withdrawal calls with USER_BLOCKED so
// the client can show why.
func UserAuth(db *gorm.DB, tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "MISSING_TOKEN")
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}
		userID, err := claims.UserID()
		if err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "UNKNOWN_USER")
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// AdminOnly requires an authenticated admin account. Must run after
// UserAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok || !user.IsAdmin {
			return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "ADMIN_REQUIRED")
		}
		return c.Next()
	}
}
