package auth

import (
	"gorm.io/gorm"

	"playpoin/services"
)

type Handler struct {
	DB     *gorm.DB
	Tokens *services.TokenService
	Guard  services.RateGuard
}

func NewHandler(db *gorm.DB, tokens *services.TokenService, guard services.RateGuard) *Handler {
	return &Handler{DB: db, Tokens: tokens, Guard: guard}
}
