package services_test

import (
	"testing"
	"time"

	"playpoin/config"
	"playpoin/services"
)

func TestEvaluateWholeWindowsOnly(t *testing.T) {
	engine := services.NewAccrualEngine(testConfig())
	anchor := baseTime

	cases := []struct {
		elapsed time.Duration
		points  int64
		windows int64
	}{
		{0, 0, 0},
		{15 * time.Second, 0, 0},
		{29 * time.Second, 0, 0},
		{30 * time.Second, 1, 1},
		{59 * time.Second, 1, 1},
		{95 * time.Second, 3, 3},
	}
	for _, tc := range cases {
		res := engine.Evaluate(anchor, anchor.Add(tc.elapsed), 0)
		if res.Points != tc.points || res.Windows != tc.windows {
			t.Errorf("elapsed %v: got points=%d windows=%d, want %d/%d",
				tc.elapsed, res.Points, res.Windows, tc.points, tc.windows)
		}
		wantAnchor := anchor.Add(time.Duration(tc.windows) * 30 * time.Second)
		if !res.NextAnchor.Equal(wantAnchor) {
			t.Errorf("elapsed %v: anchor = %v, want %v", tc.elapsed, res.NextAnchor, wantAnchor)
		}
	}
}

func TestEvaluateCapsAtMaxPerUpdate(t *testing.T) {
	engine := services.NewAccrualEngine(testConfig())
	anchor := baseTime

	// 20 windows elapsed but a single call never grants more than 5.
	res := engine.Evaluate(anchor, anchor.Add(600*time.Second), 0)
	if res.Points != 5 {
		t.Errorf("points = %d, want 5", res.Points)
	}
	// The anchor still consumes every elapsed window.
	if !res.NextAnchor.Equal(anchor.Add(600 * time.Second)) {
		t.Errorf("anchor = %v, want %v", res.NextAnchor, anchor.Add(600*time.Second))
	}
}

func TestEvaluateCapsAtDailyLimit(t *testing.T) {
	cfg := &config.Config{
		PointsPerClaim:  1,
		CooldownSeconds: 30,
		DailyLimit:      2880,
		MaxPerUpdate:    5,
	}
	engine := services.NewAccrualEngine(cfg)

	// Five windows elapsed, but only one point of daily headroom left.
	res := engine.Evaluate(baseTime, baseTime.Add(5*30*time.Second), 2879)
	if res.Points != 1 {
		t.Errorf("points = %d, want 1", res.Points)
	}

	// At the limit the claim is a no-op, never negative.
	res = engine.Evaluate(baseTime, baseTime.Add(5*30*time.Second), 2880)
	if res.Points != 0 {
		t.Errorf("points at limit = %d, want 0", res.Points)
	}
}

func TestEvaluateNeverExceedsLimits(t *testing.T) {
	engine := services.NewAccrualEngine(testConfig())

	for today := int64(0); today <= 10; today++ {
		for _, elapsed := range []time.Duration{0, 31 * time.Second, 5 * time.Minute, time.Hour} {
			res := engine.Evaluate(baseTime, baseTime.Add(elapsed), today)
			if res.Points > 5 {
				t.Fatalf("claim %d exceeds maxPerUpdate", res.Points)
			}
			if today+res.Points > 10 {
				t.Fatalf("claim %d pushes pointsToday %d over the daily limit", res.Points, today)
			}
		}
	}
}
