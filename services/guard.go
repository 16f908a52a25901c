package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"playpoin/config"
)

const guardWindow = time.Minute

// RateGuard bounds request rates and login attempts. A rejected call
// must leave no side effects beyond the guard's own counters.
type RateGuard interface {
	// Allow records one request for key and returns ErrRateLimited when
	// the sliding one-minute window is already full.
	Allow(key string, now time.Time) error

	// CheckLockout returns ErrLockedOut while a login lockout is active.
	CheckLockout(key string, now time.Time) error

	// RegisterFailure counts one failed login and starts the lockout
	// once the attempt limit is reached.
	RegisterFailure(key string, now time.Time) error

	// ClearFailures resets the failure counter after a successful login.
	ClearFailures(key string) error
}

// MemoryGuard keeps sliding windows in process memory. Suited to a
// single instance deployment and to tests.
type MemoryGuard struct {
	cfg *config.Config

	mu       sync.Mutex
	requests map[string][]time.Time
	failures map[string][]time.Time
	lockouts map[string]time.Time
}

func NewMemoryGuard(cfg *config.Config) *MemoryGuard {
	return &MemoryGuard{
		cfg:      cfg,
		requests: make(map[string][]time.Time),
		failures: make(map[string][]time.Time),
		lockouts: make(map[string]time.Time),
	}
}

func pruneWindow(stamps []time.Time, cutoff time.Time) []time.Time {
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

func (g *MemoryGuard) Allow(key string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	window := pruneWindow(g.requests[key], now.Add(-guardWindow))
	if len(window) >= g.cfg.MaxRequestsPerMinute {
		g.requests[key] = window
		return ErrRateLimited
	}
	g.requests[key] = append(window, now)
	return nil
}

func (g *MemoryGuard) CheckLockout(key string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	until, ok := g.lockouts[key]
	if !ok {
		return nil
	}
	if now.Before(until) {
		return ErrLockedOut
	}
	delete(g.lockouts, key)
	delete(g.failures, key)
	return nil
}

func (g *MemoryGuard) RegisterFailure(key string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	window := pruneWindow(g.failures[key], now.Add(-g.cfg.LockoutDuration))
	window = append(window, now)
	g.failures[key] = window

	if len(window) >= g.cfg.MaxLoginAttempts {
		g.lockouts[key] = now.Add(g.cfg.LockoutDuration)
		return ErrLockedOut
	}
	return nil
}

func (g *MemoryGuard) ClearFailures(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.failures, key)
	delete(g.lockouts, key)
	return nil
}

// RedisGuard shares counters across instances using sorted-set sliding
// windows.
type RedisGuard struct {
	cfg    *config.Config
	client *redis.Client
	ctx    context.Context
}

func NewRedisGuard(cfg *config.Config) (*RedisGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisGuard{cfg: cfg, client: client, ctx: ctx}, nil
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}

func (g *RedisGuard) slide(key string, now time.Time, window time.Duration, limit int, record bool) (int64, error) {
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)
	if err := g.client.ZRemRangeByScore(g.ctx, key, "-inf", cutoff).Err(); err != nil {
		return 0, err
	}
	count, err := g.client.ZCard(g.ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if record && count < int64(limit) {
		member := strconv.FormatInt(now.UnixNano(), 10)
		if err := g.client.ZAdd(g.ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member}).Err(); err != nil {
			return 0, err
		}
		if err := g.client.Expire(g.ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (g *RedisGuard) Allow(key string, now time.Time) error {
	count, err := g.slide("guard:req:"+key, now, guardWindow, g.cfg.MaxRequestsPerMinute, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	if count >= int64(g.cfg.MaxRequestsPerMinute) {
		return ErrRateLimited
	}
	return nil
}

func (g *RedisGuard) CheckLockout(key string, now time.Time) error {
	exists, err := g.client.Exists(g.ctx, "guard:lock:"+key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	if exists > 0 {
		return ErrLockedOut
	}
	return nil
}

func (g *RedisGuard) RegisterFailure(key string, now time.Time) error {
	count, err := g.slide("guard:fail:"+key, now, g.cfg.LockoutDuration, g.cfg.MaxLoginAttempts+1, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	if count+1 >= int64(g.cfg.MaxLoginAttempts) {
		if err := g.client.Set(g.ctx, "guard:lock:"+key, "1", g.cfg.LockoutDuration).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrTransientStore, err)
		}
		return ErrLockedOut
	}
	return nil
}

func (g *RedisGuard) ClearFailures(key string) error {
	return g.client.Del(g.ctx, "guard:fail:"+key, "guard:lock:"+key).Err()
}
