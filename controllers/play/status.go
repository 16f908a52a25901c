package play

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
)

// EarningStatus reports the polling read model the client renders:
// whether a session is earning, today's points, and when the next claim
// lands.
func (h *Handler) EarningStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	status, err := h.Sessions.Status(user.ID, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Earning status retrieved", status)
}
