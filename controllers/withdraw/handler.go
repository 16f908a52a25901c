package withdraw

import (
	"github.com/gofiber/fiber/v2"

	"playpoin/models"
	"playpoin/services"
)

type Handler struct {
	Gate   *services.WithdrawGate
	Ledger *services.Ledger
}

func NewHandler(gate *services.WithdrawGate, ledger *services.Ledger) *Handler {
	return &Handler{Gate: gate, Ledger: ledger}
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}
