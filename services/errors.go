package services

import "errors"

var (
	ErrUserBlocked         = errors.New("user is not active")
	ErrUserNotFound        = errors.New("user not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrSessionConflict     = errors.New("user already has an open session")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionTerminal     = errors.New("session already ended")
	ErrSessionPaused       = errors.New("session is paused")
	ErrSessionNotPaused    = errors.New("session is not paused")
	ErrIdleTimeout         = errors.New("session idle timeout")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimum        = errors.New("amount below minimum")
	ErrAboveMaximum        = errors.New("amount above maximum")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrWithdrawNotFound    = errors.New("withdraw request not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrMissingTxHash       = errors.New("transaction hash required")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrLockedOut           = errors.New("account temporarily locked")
	ErrTransientStore      = errors.New("transient store error")
)
