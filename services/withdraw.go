package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"playpoin/config"
	"playpoin/models"
)

// WithdrawGate validates withdrawal requests against ledger balance and
// configured bounds and walks them through the approval workflow:
// pending -> {approved, rejected, cancelled}; approved -> {paid,
// rejected, cancelled}; paid/rejected/cancelled are terminal.
type WithdrawGate struct {
	db     *gorm.DB
	cfg    *config.Config
	ledger *Ledger
}

func NewWithdrawGate(db *gorm.DB, cfg *config.Config, ledger *Ledger) *WithdrawGate {
	return &WithdrawGate{db: db, cfg: cfg, ledger: ledger}
}

var withdrawTransitions = map[string][]string{
	models.WithdrawPending:  {models.WithdrawApproved, models.WithdrawRejected, models.WithdrawCancelled},
	models.WithdrawApproved: {models.WithdrawPaid, models.WithdrawRejected, models.WithdrawCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range withdrawTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Request opens a pending withdrawal and locks its points cost out of
// the spendable balance in the same transaction. The user row lock
// serializes the request against concurrent accrual.
func (g *WithdrawGate) Request(userID uint, address string, amountUSDT decimal.Decimal, now time.Time) (*models.WithdrawRequest, error) {
	if address == "" || amountUSDT.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if amountUSDT.LessThan(g.cfg.MinAmount) {
		return nil, ErrBelowMinimum
	}
	if amountUSDT.GreaterThan(g.cfg.MaxAmount) {
		return nil, ErrAboveMaximum
	}

	cost := amountUSDT.Mul(decimal.NewFromInt(g.cfg.ToDollarRate))
	if !cost.IsInteger() {
		return nil, ErrInvalidAmount
	}
	pointsCost := cost.IntPart()

	var request models.WithdrawRequest

	err := withRetry(func() error {
		return g.db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			if !user.IsActive() {
				return ErrUserBlocked
			}

			balance, err := g.ledger.balanceTx(tx, userID)
			if err != nil {
				return err
			}
			if balance < g.cfg.MinWithdraw {
				return ErrInsufficientBalance
			}

			request = models.WithdrawRequest{
				UserID:     userID,
				Address:    address,
				AmountUSDT: amountUSDT,
				PointsCost: pointsCost,
				Status:     models.WithdrawPending,
			}
			if err := tx.Create(&request).Error; err != nil {
				return err
			}

			entry, err := g.ledger.Append(tx, userID, models.TrxWithdrawLock, -pointsCost, TrxMeta{
				WithdrawID: request.ID,
				Note:       fmt.Sprintf("lock for withdrawal of %s USDT", amountUSDT.String()),
			})
			if err != nil {
				return err
			}

			user.Points = entry.PointsBalance
			return tx.Save(&user).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Resolve moves a request through the workflow. Paying out requires the
// on-chain transaction hash and consumes the lock permanently; rejecting
// or cancelling releases the locked points back to the user.
func (g *WithdrawGate) Resolve(requestID uint, outcome, processor, txHash, note string, now time.Time) (*models.WithdrawRequest, error) {
	var request models.WithdrawRequest

	err := withRetry(func() error {
		return g.db.Transaction(func(tx *gorm.DB) error {
			var probe models.WithdrawRequest
			if err := tx.First(&probe, requestID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrWithdrawNotFound
				}
				return err
			}

			var user models.User
			if err := lockForUpdate(tx).First(&user, probe.UserID).Error; err != nil {
				return err
			}
			if err := lockForUpdate(tx).First(&request, requestID).Error; err != nil {
				return err
			}

			if !transitionAllowed(request.Status, outcome) {
				return ErrInvalidTransition
			}

			switch outcome {
			case models.WithdrawPaid:
				if txHash == "" {
					return ErrMissingTxHash
				}
				request.TxHash = txHash

			case models.WithdrawRejected, models.WithdrawCancelled:
				entry, err := g.ledger.Append(tx, user.ID, models.TrxWithdrawUnlock, request.PointsCost, TrxMeta{
					WithdrawID: request.ID,
					Note:       "release withdrawal lock (" + outcome + ")",
				})
				if err != nil {
					return err
				}
				user.Points = entry.PointsBalance
				if err := tx.Save(&user).Error; err != nil {
					return err
				}
			}

			request.Status = outcome
			request.ProcessedBy = processor
			request.ProcessedAt = &now
			if note != "" {
				request.Note = note
			}
			return tx.Save(&request).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByUser returns a user's own requests, newest first.
func (g *WithdrawGate) ListByUser(userID uint, limit, offset int) ([]models.WithdrawRequest, error) {
	var requests []models.WithdrawRequest
	err := g.db.Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&requests).Error
	return requests, err
}

// List returns requests across users, optionally filtered by status.
func (g *WithdrawGate) List(status string, limit, offset int) ([]models.WithdrawRequest, error) {
	q := g.db.Order("id DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []models.WithdrawRequest
	err := q.Find(&requests).Error
	return requests, err
}
