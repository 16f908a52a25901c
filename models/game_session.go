package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SessionActive    = "active"
	SessionPaused    = "paused"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// GameSession is one play attempt. A user can hold at most one
// non-terminal session at a time; completed and abandoned sessions are
// immutable.
type GameSession struct {
	gorm.Model

	UserID   uint   `gorm:"index" json:"user_id"`
	GameCode string `gorm:"size:64;index" json:"game_code"`
	Status   string `gorm:"size:16;index" json:"status"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	PausedAt  *time.Time `json:"paused_at,omitempty"`

	Duration     int64 `json:"duration"` // verified play seconds
	PointsEarned int64 `json:"points_earned"`
	Heartbeats   int64 `json:"heartbeats"`

	LastHeartbeat time.Time `gorm:"index" json:"last_heartbeat"`

	// ClaimAnchor marks the start of the current cooldown window. It only
	// ever moves forward by whole cooldown multiples, or by the paused
	// span on resume.
	ClaimAnchor time.Time `json:"claim_anchor"`
}

func (s *GameSession) Terminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionAbandoned
}
