package withdraw

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"playpoin/helpers"
)

type WithdrawRequestBody struct {
	Address    string `json:"address"`
	AmountUSDT string `json:"amount_usdt"`
}

func (h *Handler) Request(c *fiber.Ctx) error {
	var req WithdrawRequestBody
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Address == "" || req.AmountUSDT == "" {
		return helpers.JSONError(c, "ADDRESS_AND_AMOUNT_REQUIRED")
	}

	amount, err := decimal.NewFromString(req.AmountUSDT)
	if err != nil {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	user, ok := currentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	request, err := h.Gate.Request(user.ID, req.Address, amount, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Withdrawal requested", request)
}
