package play

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
)

type StartSessionRequest struct {
	GameCode string `json:"game_code"`
}

func (h *Handler) StartSession(c *fiber.Ctx) error {
	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.GameCode == "" {
		return helpers.JSONError(c, "GAME_CODE_REQUIRED")
	}

	user, ok := currentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	session, err := h.Sessions.Start(user.ID, req.GameCode, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Session started", session)
}
