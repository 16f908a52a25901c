package jobs

import (
	"time"

	log "github.com/sirupsen/logrus"

	"playpoin/services"
)

// StartIdleSweeper abandons sessions that stopped heartbeating. The
// sweep re-checks each candidate under the row lock, so a heartbeat
// racing the sweep always wins.
func StartIdleSweeper(sessions *services.SessionManager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			swept, err := sessions.SweepIdle(time.Now())
			if err != nil {
				log.WithError(err).Error("idle sweep failed")
				continue
			}
			if swept > 0 {
				log.WithField("sessions", swept).Info("abandoned idle sessions")
			}
		}
	}()
}
