package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	WithdrawPending   = "pending"
	WithdrawApproved  = "approved"
	WithdrawRejected  = "rejected"
	WithdrawPaid      = "paid"
	WithdrawCancelled = "cancelled"
)

// WithdrawRequest locks PointsCost out of the user's spendable balance
// at creation. The lock is released on rejected/cancelled and consumed
// permanently on paid.
type WithdrawRequest struct {
	gorm.Model

	UserID  uint   `gorm:"index" json:"user_id"`
	Address string `gorm:"size:128" json:"address"`

	AmountUSDT decimal.Decimal `gorm:"type:numeric(20,6)" json:"amount_usdt"`
	PointsCost int64           `json:"points_cost"`

	Status string `gorm:"size:16;index;default:pending" json:"status"`

	ProcessedBy string     `gorm:"size:64" json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	TxHash      string     `gorm:"size:128" json:"tx_hash,omitempty"`
	Note        string     `gorm:"size:255" json:"note,omitempty"`
}

func (w *WithdrawRequest) Terminal() bool {
	return w.Status == WithdrawPaid || w.Status == WithdrawRejected || w.Status == WithdrawCancelled
}
