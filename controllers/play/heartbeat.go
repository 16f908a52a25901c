package play

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/services"
)

type HeartbeatRequest struct {
	SessionID uint `json:"session_id"`
}

func (h *Handler) Heartbeat(c *fiber.Ctx) error {
	var req HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.SessionID == 0 {
		return helpers.JSONError(c, "SESSION_ID_REQUIRED")
	}

	user, ok := currentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	if err := h.ownSession(user.ID, req.SessionID); err != nil {
		return helpers.ServiceError(c, err)
	}

	result, err := h.Sessions.Heartbeat(req.SessionID, time.Now())
	if err != nil && !errors.Is(err, services.ErrIdleTimeout) {
		return helpers.ServiceError(c, err)
	}

	// The idle transition already committed; tell the client the session
	// is gone rather than failing the call.
	if errors.Is(err, services.ErrIdleTimeout) {
		return helpers.JSONSuccess(c, "Session abandoned after idle timeout", result)
	}
	return helpers.JSONSuccess(c, "Heartbeat accepted", result)
}
