package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/models"
)

func (h *Handler) ListWithdrawals(c *fiber.Ctx) error {
	limit, offset := helpers.Pagination(c)
	requests, err := h.Gate.List(c.Query("status"), limit, offset)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_WITHDRAWALS")
	}
	return helpers.JSONSuccess(c, "Withdrawals retrieved", requests)
}

type ResolveWithdrawalRequest struct {
	Outcome string `json:"outcome"` // approved, rejected, cancelled, paid
	TxHash  string `json:"tx_hash"`
	Note    string `json:"note"`
}

// ResolveWithdrawal walks a request through the approval workflow.
// Marking it paid needs the payout transaction hash; rejecting or
// cancelling releases the locked points back to the user.
func (h *Handler) ResolveWithdrawal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_WITHDRAW_ID")
	}

	var req ResolveWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	operator, _ := c.Locals("user").(models.User)

	request, err := h.Gate.Resolve(uint(id), req.Outcome, operator.Username, req.TxHash, req.Note, time.Now())
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Withdrawal resolved", request)
}
