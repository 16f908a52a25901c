package jobs

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"playpoin/models"
	"playpoin/services"
)

// StartReconciler periodically audits the cached User.Points against
// the ledger. Drift means a bug somewhere upstream; it is logged, never
// silently repaired.
func StartReconciler(db *gorm.DB, ledger *services.Ledger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			if err := reconcileOnce(db, ledger); err != nil {
				log.WithError(err).Error("balance reconciliation failed")
			}
		}
	}()
}

func reconcileOnce(db *gorm.DB, ledger *services.Ledger) error {
	var users []models.User
	if err := db.Select("id", "username", "points").Find(&users).Error; err != nil {
		return err
	}

	for _, user := range users {
		balance, err := ledger.BalanceOf(user.ID)
		if err != nil {
			return err
		}
		if balance != user.Points {
			log.WithFields(log.Fields{
				"user":   user.Username,
				"cached": user.Points,
				"ledger": balance,
			}).Warn("points cache does not match ledger")
		}
	}
	return nil
}
