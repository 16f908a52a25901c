package services

import (
	"time"

	"playpoin/config"
	"playpoin/models"
)

// AccrualEngine converts verified play time into point grants. It is a
// pure calculation over a session's claim anchor; callers apply the
// resulting side effects atomically with the ledger append.
type AccrualEngine struct {
	cfg *config.Config
}

func NewAccrualEngine(cfg *config.Config) *AccrualEngine {
	return &AccrualEngine{cfg: cfg}
}

// ClaimResult describes the outcome of one evaluation. Points == 0 is a
// no-op, not an error.
type ClaimResult struct {
	Points     int64
	Windows    int64
	NextAnchor time.Time
	NextEarnAt time.Time
}

// Evaluate computes the claim for whole cooldown windows elapsed since
// the session's claim anchor, capped first at MaxPerUpdate and then so
// pointsToday never exceeds the daily limit. The anchor always advances
// by the full windows consumed, even when a cap truncated the grant;
// capped-away windows are forfeit, not banked.
func (e *AccrualEngine) Evaluate(anchor, now time.Time, pointsToday int64) ClaimResult {
	cooldown := e.cfg.Cooldown()

	res := ClaimResult{NextAnchor: anchor}
	if cooldown <= 0 || !now.After(anchor) {
		res.NextEarnAt = anchor.Add(cooldown)
		return res
	}

	windows := int64(now.Sub(anchor) / cooldown)
	if windows <= 0 {
		res.NextEarnAt = anchor.Add(cooldown)
		return res
	}

	claim := windows * e.cfg.PointsPerClaim
	if claim > e.cfg.MaxPerUpdate {
		claim = e.cfg.MaxPerUpdate
	}
	if room := e.cfg.DailyLimit - pointsToday; claim > room {
		claim = room
	}
	if claim < 0 {
		claim = 0
	}

	res.Points = claim
	res.Windows = windows
	res.NextAnchor = anchor.Add(time.Duration(windows) * cooldown)
	res.NextEarnAt = res.NextAnchor.Add(cooldown)
	return res
}

// dayOf formats the UTC day a timestamp belongs to. The daily limit
// resets at midnight UTC.
func dayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// rolloverDay resets the user's daily counter when the UTC day has
// advanced since the last grant. End-of-session flushes evaluate at the
// last verified heartbeat, which may lag the wall clock, so the counter
// only ever rolls forward. Mutates in memory only; the caller persists
// the user.
func rolloverDay(user *models.User, now time.Time) {
	day := dayOf(now)
	if day > user.PointsDate {
		user.PointsDate = day
		user.PointsToday = 0
	}
}
