package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"playpoin/models"
)

// Ledger is the append-only record of every point-affecting event and
// the sole source of truth for a user's balance. User.Points is a cache
// that callers keep in sync from the returned entry.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// TrxMeta carries the optional references recorded on a ledger entry.
type TrxMeta struct {
	GameCode   string
	SessionID  uint
	WithdrawID uint
	Note       string
	Extra      map[string]any
}

// Append inserts a new immutable entry inside the caller's transaction.
// The caller must already hold the user row lock so the running balance
// cannot move underneath us. Debit types must carry a negative delta
// and may not drive the balance below zero.
func (l *Ledger) Append(tx *gorm.DB, userID uint, trxType string, delta int64, meta TrxMeta) (*models.Transaction, error) {
	if models.Debit(trxType) && delta > 0 {
		return nil, fmt.Errorf("%s requires a non-positive delta", trxType)
	}
	if !models.Debit(trxType) && delta < 0 {
		return nil, fmt.Errorf("%s requires a non-negative delta", trxType)
	}

	balance, err := l.balanceTx(tx, userID)
	if err != nil {
		return nil, err
	}
	if balance+delta < 0 {
		return nil, ErrInsufficientBalance
	}

	entry := models.Transaction{
		UserID:        userID,
		TrxType:       trxType,
		PointsDelta:   delta,
		PointsBalance: balance + delta,
		GameCode:      meta.GameCode,
		SessionID:     meta.SessionID,
		WithdrawID:    meta.WithdrawID,
		Note:          meta.Note,
		RefID:         uuid.New().String(),
	}
	if len(meta.Extra) > 0 {
		raw, err := json.Marshal(meta.Extra)
		if err != nil {
			return nil, err
		}
		entry.Meta = datatypes.JSON(raw)
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// BalanceOf returns the ledger balance outside of any transaction.
func (l *Ledger) BalanceOf(userID uint) (int64, error) {
	return l.balanceTx(l.db, userID)
}

func (l *Ledger) balanceTx(tx *gorm.DB, userID uint) (int64, error) {
	var last models.Transaction
	err := tx.Where("user_id = ?", userID).Order("id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.PointsBalance, nil
}

// EntriesOf lists a user's entries, newest first.
func (l *Ledger) EntriesOf(userID uint, limit, offset int) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := l.db.Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&entries).Error
	return entries, err
}

// lockForUpdate takes a FOR UPDATE row lock on dialects that support
// it. The sqlite dialect used in tests serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
