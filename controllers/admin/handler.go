package admin

import (
	"gorm.io/gorm"

	"playpoin/services"
)

type Handler struct {
	DB     *gorm.DB
	Gate   *services.WithdrawGate
	Ledger *services.Ledger
}

func NewHandler(db *gorm.DB, gate *services.WithdrawGate, ledger *services.Ledger) *Handler {
	return &Handler{DB: db, Gate: gate, Ledger: ledger}
}
