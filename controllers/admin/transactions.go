package admin

import (
	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
)

// UserTransactions lists a user's ledger entries with the current
// ledger balance, so an operator can audit it against the cached
// User.Points.
func (h *Handler) UserTransactions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_USER_ID")
	}

	limit, offset := helpers.Pagination(c)
	entries, err := h.Ledger.EntriesOf(uint(id), limit, offset)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_TRANSACTIONS")
	}

	balance, err := h.Ledger.BalanceOf(uint(id))
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_READ_BALANCE")
	}

	return helpers.JSONSuccess(c, "Transactions retrieved", fiber.Map{
		"balance":      balance,
		"transactions": entries,
	})
}
