package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"playpoin/config"
	"playpoin/models"
)

var openStatuses = []string{models.SessionActive, models.SessionPaused}

// SessionManager owns the lifecycle of a user's play session: start,
// heartbeat, pause/resume, end and idle-timeout detection. Every
// mutation runs inside one transaction holding the user row lock, so a
// heartbeat can never apply a partial accrual and per-user operations
// are serialized.
type SessionManager struct {
	db      *gorm.DB
	cfg     *config.Config
	ledger  *Ledger
	accrual *AccrualEngine
}

func NewSessionManager(db *gorm.DB, cfg *config.Config, ledger *Ledger) *SessionManager {
	return &SessionManager{
		db:      db,
		cfg:     cfg,
		ledger:  ledger,
		accrual: NewAccrualEngine(cfg),
	}
}

// HeartbeatResult is returned by Heartbeat and End.
type HeartbeatResult struct {
	Session     models.GameSession `json:"session"`
	Claimed     int64              `json:"claimed"`
	PointsToday int64              `json:"points_today"`
	NextEarnAt  time.Time          `json:"next_earn_at"`
	Idle        bool               `json:"idle"`
}

// EarningStatus is the read model the presentation layer polls.
type EarningStatus struct {
	IsEarning         bool       `json:"is_earning"`
	SessionID         uint       `json:"session_id,omitempty"`
	GameCode          string     `json:"game_code,omitempty"`
	PointsEarned      int64      `json:"points_earned"`
	SessionDuration   int64      `json:"session_duration"`
	PointsToday       int64      `json:"points_today"`
	DailyLimit        int64      `json:"daily_limit"`
	CanEarn           bool       `json:"can_earn"`
	NextEarnTime      *time.Time `json:"next_earn_time,omitempty"`
	HeartbeatInterval int64      `json:"heartbeat_interval"`
}

// Start opens a new active session. Blocked users cannot play and a
// user can hold at most one open (active or paused) session.
func (m *SessionManager) Start(userID uint, gameCode string, now time.Time) (*models.GameSession, error) {
	var session models.GameSession

	err := withRetry(func() error {
		return m.db.Transaction(func(tx *gorm.DB) error {
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

			var game models.Game
			if err := tx.Where("code = ? AND is_active = true", gameCode).First(&game).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrGameNotFound
				}
				return err
			}

			var open int64
			if err := tx.Model(&models.GameSession{}).
				Where("user_id = ? AND status IN ?", userID, openStatuses).
				Count(&open).Error; err != nil {
				return err
			}
			if open > 0 {
				return ErrSessionConflict
			}

			session = models.GameSession{
				UserID:        userID,
				GameCode:      game.Code,
				Status:        models.SessionActive,
				StartedAt:     now,
				LastHeartbeat: now,
				ClaimAnchor:   now,
			}
			return tx.Create(&session).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Heartbeat records liveness, extends verified play time and evaluates
// accrual, all in one transactional unit. A heartbeat arriving after
// the idle window auto-abandons the session; that outcome is flagged
// with ErrIdleTimeout but the transition itself is committed.
func (m *SessionManager) Heartbeat(sessionID uint, now time.Time) (*HeartbeatResult, error) {
	var res HeartbeatResult

	err := withRetry(func() error {
		return m.db.Transaction(func(tx *gorm.DB) error {
			user, session, err := m.lockPair(tx, sessionID)
			if err != nil {
				return err
			}
			if session.Terminal() {
				return ErrSessionTerminal
			}
			if session.Status == models.SessionPaused {
				return ErrSessionPaused
			}

			if now.Sub(session.LastHeartbeat) > m.cfg.MaxIdle() {
				if err := m.finish(tx, user, session, models.SessionAbandoned, now, &res); err != nil {
					return err
				}
				res.Idle = true
				return nil
			}

			session.Heartbeats++
			session.Duration += int64(now.Sub(session.LastHeartbeat) / time.Second)
			session.LastHeartbeat = now

			claimed, next, err := m.applyAccrual(tx, user, session, now)
			if err != nil {
				return err
			}

			if err := tx.Save(session).Error; err != nil {
				return err
			}
			if err := tx.Save(user).Error; err != nil {
				return err
			}

			res = HeartbeatResult{
				Session:     *session,
				Claimed:     claimed,
				PointsToday: user.PointsToday,
				NextEarnAt:  next,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if res.Idle {
		return &res, ErrIdleTimeout
	}
	return &res, nil
}

// Pause suspends an active session. Paused time never earns points.
func (m *SessionManager) Pause(sessionID uint, now time.Time) (*models.GameSession, error) {
	var out models.GameSession

	err := withRetry(func() error {
		return m.db.Transaction(func(tx *gorm.DB) error {
			_, session, err := m.lockPair(tx, sessionID)
			if err != nil {
				return err
			}
			if session.Terminal() {
				return ErrSessionTerminal
			}
			if session.Status == models.SessionPaused {
				return ErrSessionPaused
			}

			session.Status = models.SessionPaused
			session.PausedAt = &now
			if err := tx.Save(session).Error; err != nil {
				return err
			}
			out = *session
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Resume reactivates a paused session, shifting the claim anchor and
// heartbeat clock forward by the paused span so the pause neither earns
// points nor counts toward the idle timeout.
func (m *SessionManager) Resume(sessionID uint, now time.Time) (*models.GameSession, error) {
	var out models.GameSession

	err := withRetry(func() error {
		return m.db.Transaction(func(tx *gorm.DB) error {
			_, session, err := m.lockPair(tx, sessionID)
			if err != nil {
				return err
			}
			if session.Terminal() {
				return ErrSessionTerminal
			}
			if session.Status != models.SessionPaused || session.PausedAt == nil {
				return ErrSessionNotPaused
			}

			span := now.Sub(*session.PausedAt)
			if span < 0 {
				span = 0
			}
			session.ClaimAnchor = session.ClaimAnchor.Add(span)
			session.LastHeartbeat = session.LastHeartbeat.Add(span)
			session.Status = models.SessionActive
			session.PausedAt = nil

			if err := tx.Save(session).Error; err != nil {
				return err
			}
			out = *session
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// End terminates a session. An explicit stop completes it; timeout or
// disconnect reasons abandon it, as does ending from the paused state.
// A final accrual flush covers windows already earned before the stop.
func (m *SessionManager) End(sessionID uint, reason string, now time.Time) (*HeartbeatResult, error) {
	var res HeartbeatResult

	err := withRetry(func() error {
		return m.db.Transaction(func(tx *gorm.DB) error {
			user, session, err := m.lockPair(tx, sessionID)
			if err != nil {
				return err
			}
			if session.Terminal() {
				return ErrSessionTerminal
			}

			status := models.SessionCompleted
			if reason == "timeout" || reason == "disconnect" || session.Status == models.SessionPaused {
				status = models.SessionAbandoned
			}
			return m.finish(tx, user, session, status, now, &res)
		})
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Status assembles the earning read model. Read-only; the notional
// daily rollover is computed without being persisted.
func (m *SessionManager) Status(userID uint, now time.Time) (*EarningStatus, error) {
	var user models.User
	if err := m.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pointsToday := user.PointsToday
	if user.PointsDate != dayOf(now) {
		pointsToday = 0
	}

	status := &EarningStatus{
		PointsToday:       pointsToday,
		DailyLimit:        m.cfg.DailyLimit,
		CanEarn:           user.IsActive() && pointsToday < m.cfg.DailyLimit,
		HeartbeatInterval: m.cfg.HeartbeatInterval,
	}

	var session models.GameSession
	err := m.db.Where("user_id = ? AND status IN ?", userID, openStatuses).
		Order("id DESC").First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return status, nil
	}
	if err != nil {
		return nil, err
	}

	status.IsEarning = session.Status == models.SessionActive
	status.SessionID = session.ID
	status.GameCode = session.GameCode
	status.PointsEarned = session.PointsEarned
	status.SessionDuration = session.Duration
	if session.Status == models.SessionActive {
		next := session.ClaimAnchor.Add(m.cfg.Cooldown())
		status.NextEarnTime = &next
	}
	return status, nil
}

// SweepIdle abandons open sessions whose last heartbeat is older than
// the idle window. Candidates are re-checked under the row lock so the
// sweep never races a heartbeat that landed after the scan started.
func (m *SessionManager) SweepIdle(now time.Time) (int, error) {
	cutoff := now.Add(-m.cfg.MaxIdle())

	var ids []uint
	if err := m.db.Model(&models.GameSession{}).
		Where("status IN ? AND last_heartbeat < ?", openStatuses, cutoff).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	swept := 0
	for _, id := range ids {
		err := withRetry(func() error {
			return m.db.Transaction(func(tx *gorm.DB) error {
				user, session, err := m.lockPair(tx, id)
				if err != nil {
					return err
				}
				// A heartbeat may have landed since the scan.
				if session.Terminal() || !session.LastHeartbeat.Before(cutoff) {
					return nil
				}
				var res HeartbeatResult
				return m.finish(tx, user, session, models.SessionAbandoned, now, &res)
			})
		})
		if err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

// lockPair loads the session, then takes the user and session row locks
// in that fixed order.
func (m *SessionManager) lockPair(tx *gorm.DB, sessionID uint) (*models.User, *models.GameSession, error) {
	var probe models.GameSession
	if err := tx.First(&probe, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	var user models.User
	if err := lockForUpdate(tx).First(&user, probe.UserID).Error; err != nil {
		return nil, nil, err
	}

	var session models.GameSession
	if err := lockForUpdate(tx).First(&session, sessionID).Error; err != nil {
		return nil, nil, err
	}
	return &user, &session, nil
}

// applyAccrual evaluates the claim at the given instant and applies all
// side effects: ledger earn entry, session counters, user counters.
// Caller persists user and session.
func (m *SessionManager) applyAccrual(tx *gorm.DB, user *models.User, session *models.GameSession, now time.Time) (int64, time.Time, error) {
	rolloverDay(user, now)

	claim := m.accrual.Evaluate(session.ClaimAnchor, now, user.PointsToday)
	session.ClaimAnchor = claim.NextAnchor

	if claim.Points == 0 {
		return 0, claim.NextEarnAt, nil
	}
	if !user.IsActive() {
		// Suspension landed mid-session: drop the grant, keep the session.
		return 0, claim.NextEarnAt, nil
	}

	entry, err := m.ledger.Append(tx, user.ID, models.TrxEarn, claim.Points, TrxMeta{
		GameCode:  session.GameCode,
		SessionID: session.ID,
		Note:      "play reward",
	})
	if err != nil {
		return 0, claim.NextEarnAt, err
	}

	user.Points = entry.PointsBalance
	user.PointsToday += claim.Points
	session.PointsEarned += claim.Points
	return claim.Points, claim.NextEarnAt, nil
}

// finish flushes accrual up to the last verified heartbeat and moves
// the session into a terminal state.
func (m *SessionManager) finish(tx *gorm.DB, user *models.User, session *models.GameSession, status string, now time.Time, res *HeartbeatResult) error {
	claimed, next, err := m.applyAccrual(tx, user, session, session.LastHeartbeat)
	if err != nil {
		return err
	}

	session.Status = status
	session.EndedAt = &now
	session.PausedAt = nil

	if err := tx.Save(session).Error; err != nil {
		return err
	}
	if err := tx.Save(user).Error; err != nil {
		return err
	}

	*res = HeartbeatResult{
		Session:     *session,
		Claimed:     claimed,
		PointsToday: user.PointsToday,
		NextEarnAt:  next,
	}
	return nil
}
