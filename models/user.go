package models

import (
	"gorm.io/gorm"
)

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusBanned    = "banned"
)

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;size:32" json:"username"`
	DisplayName  string `gorm:"size:64" json:"display_name"`
	PasswordHash string `gorm:"size:128" json:"-"`
	Status       string `gorm:"size:16;default:active;index" json:"status"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	// Points is a cache of the ledger balance; the transactions table is
	// the source of truth and the two must always reconcile.
	Points      int64  `json:"points"`
	PointsToday int64  `json:"points_today"`
	PointsDate  string `gorm:"size:10" json:"points_date"` // UTC day the counter belongs to

	Sessions     []GameSession `gorm:"foreignKey:UserID"`
	Transactions []Transaction `gorm:"foreignKey:UserID"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
