package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LiveStats feeds the landing page "live" counters. The numbers are
// synthetic: derived only from the clock, so every instance serves the
// same values for the same instant and the counters move smoothly
// through the day.
type LiveStats struct {
	PlayersOnline      int64           `json:"players_online"`
	PointsAwardedToday int64           `json:"points_awarded_today"`
	PaidOutUSDT        decimal.Decimal `json:"paid_out_usdt"`
	WithdrawalsToday   int64           `json:"withdrawals_today"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// mix is a cheap integer hash used to vary the stats between days and
// minutes without any stored state.
func mix(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}

// LandingStats is deterministic: for equal timestamps it returns equal
// values.
func LandingStats(now time.Time) LiveStats {
	utc := now.UTC()
	day := uint64(utc.Unix() / 86400)
	minute := uint64(utc.Unix() / 60)

	secOfDay := float64(utc.Hour()*3600 + utc.Minute()*60 + utc.Second())
	// Peak around 20:00 UTC, trough around 08:00.
	wave := math.Sin(2 * math.Pi * (secOfDay/86400.0 - 0.33))

	base := 4200 + int64(mix(day)%900)
	players := base + int64(1500*wave) + int64(mix(minute)%120)

	// Counters accumulate monotonically over the day.
	progress := secOfDay / 86400.0
	pointsToday := int64(float64(2_400_000+int64(mix(day)%600_000)) * progress)
	withdrawals := int64(float64(350+int64(mix(day)%150)) * progress)

	paidCents := int64(float64(820_000+int64(mix(day)%240_000)) * progress)
	paid := decimal.NewFromInt(paidCents).Div(decimal.NewFromInt(100))

	return LiveStats{
		PlayersOnline:      players,
		PointsAwardedToday: pointsToday,
		PaidOutUSDT:        paid,
		WithdrawalsToday:   withdrawals,
		GeneratedAt:        utc,
	}
}
