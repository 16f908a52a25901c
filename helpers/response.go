package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"playpoin/services"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return JSONErrorStatus(c, fiber.StatusBadRequest, message)
}

func JSONErrorStatus(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// serviceCodes maps core errors to wire codes and HTTP statuses.
var serviceCodes = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrUserBlocked, fiber.StatusForbidden, "USER_BLOCKED"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{services.ErrGameNotFound, fiber.StatusNotFound, "GAME_NOT_FOUND"},
	{services.ErrSessionConflict, fiber.StatusConflict, "SESSION_CONFLICT"},
	{services.ErrSessionNotFound, fiber.StatusNotFound, "SESSION_NOT_FOUND"},
	{services.ErrSessionTerminal, fiber.StatusBadRequest, "SESSION_TERMINAL"},
	{services.ErrSessionPaused, fiber.StatusBadRequest, "SESSION_PAUSED"},
	{services.ErrSessionNotPaused, fiber.StatusBadRequest, "SESSION_NOT_PAUSED"},
	{services.ErrInsufficientBalance, fiber.StatusBadRequest, "INSUFFICIENT_BALANCE"},
	{services.ErrBelowMinimum, fiber.StatusBadRequest, "BELOW_MINIMUM"},
	{services.ErrAboveMaximum, fiber.StatusBadRequest, "ABOVE_MAXIMUM"},
	{services.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
	{services.ErrWithdrawNotFound, fiber.StatusNotFound, "WITHDRAW_NOT_FOUND"},
	{services.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_TRANSITION"},
	{services.ErrMissingTxHash, fiber.StatusBadRequest, "TX_HASH_REQUIRED"},
	{services.ErrRateLimited, fiber.StatusTooManyRequests, "RATE_LIMITED"},
	{services.ErrLockedOut, fiber.StatusTooManyRequests, "LOCKED_OUT"},
	{services.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{services.ErrTransientStore, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
}

// ServiceError renders a core error through the standard envelope.
func ServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceCodes {
		if errors.Is(err, m.err) {
			return JSONErrorStatus(c, m.status, m.code)
		}
	}
	return JSONErrorStatus(c, fiber.StatusInternalServerError, "INTERNAL_ERROR")
}
