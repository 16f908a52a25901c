package play

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
)

type EndSessionRequest struct {
	SessionID uint   `json:"session_id"`
	Reason    string `json:"reason"` // empty/"stop", "timeout", "disconnect"
}

func (h *Handler) EndSession(c *fiber.Ctx) error {
	var req EndSessionRequest
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

	result, err := h.Sessions.End(req.SessionID, req.Reason, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Session ended", result)
}

type PauseSessionRequest struct {
	SessionID uint `json:"session_id"`
}

func (h *Handler) PauseSession(c *fiber.Ctx) error {
	var req PauseSessionRequest
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

	session, err := h.Sessions.Pause(req.SessionID, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Session paused", session)
}

func (h *Handler) ResumeSession(c *fiber.Ctx) error {
	var req PauseSessionRequest
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

	session, err := h.Sessions.Resume(req.SessionID, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Session resumed", session)
}
