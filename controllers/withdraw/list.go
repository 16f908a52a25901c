package withdraw

import (
	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
)

// List returns the caller's own withdrawal requests.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	limit, offset := helpers.Pagination(c)
	requests, err := h.Gate.ListByUser(user.ID, limit, offset)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_WITHDRAWALS")
	}
	return helpers.JSONSuccess(c, "Withdrawals retrieved", requests)
}

// Transactions returns the caller's ledger entries, newest first.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	limit, offset := helpers.Pagination(c)
	entries, err := h.Ledger.EntriesOf(user.ID, limit, offset)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_TRANSACTIONS")
	}

	balance, err := h.Ledger.BalanceOf(user.ID)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_READ_BALANCE")
	}

	return helpers.JSONSuccess(c, "Transactions retrieved", fiber.Map{
		"balance":      balance,
		"transactions": entries,
	})
}
