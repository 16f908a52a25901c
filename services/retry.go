package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// withRetry runs fn up to retryAttempts times with exponential backoff.
// Only transient store faults are retried; domain errors return
// immediately. Exhausting the attempts surfaces ErrTransientStore so
// callers see a single terminal error with no partial mutation (fn must
// be a full transactional unit).
func withRetry(fn func() error) error {
	var lastErr error
	delay := retryBaseDelay

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}

		lastErr = fn()
		if lastErr == nil || !isTransient(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v (after %d attempts)", ErrTransientStore, lastErr, retryAttempts)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Driver-level faults that carry no typed error.
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"deadlock detected",
		"could not serialize access",
		"database is locked",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
