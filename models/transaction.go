package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TrxEarn           = "earn"
	TrxSpend          = "spend"
	TrxWithdrawLock   = "withdraw_lock"
	TrxWithdrawUnlock = "withdraw_unlock"
)

// Transaction is an append-only ledger entry. Entries are never updated
// or deleted; corrections are written as new offsetting entries.
type Transaction struct {
	gorm.Model

	UserID  uint   `gorm:"index" json:"user_id"`
	TrxType string `gorm:"size:16;index" json:"trx_type"`

	PointsDelta   int64 `json:"points_delta"`
	PointsBalance int64 `json:"points_balance"` // running balance after applying the delta

	GameCode   string `gorm:"size:64" json:"game_code,omitempty"`
	SessionID  uint   `gorm:"index" json:"session_id,omitempty"`
	WithdrawID uint   `gorm:"index" json:"withdraw_id,omitempty"`

	Note  string         `gorm:"size:255" json:"note"`
	RefID string         `gorm:"size:64;index" json:"ref_id"`
	Meta  datatypes.JSON `json:"meta,omitempty"`
}

// Debit reports whether the type must carry a negative delta.
func Debit(trxType string) bool {
	return trxType == TrxSpend || trxType == TrxWithdrawLock
}
