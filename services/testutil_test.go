package services_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"playpoin/config"
	"playpoin/database"
	"playpoin/models"
	"playpoin/services"
)

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		PointsPerClaim:       1,
		CooldownSeconds:      30,
		DailyLimit:           10,
		MaxPerUpdate:         5,
		HeartbeatInterval:    20,
		MaxIdleSeconds:       300,
		ToDollarRate:         10000,
		MinWithdraw:          10000,
		MinAmount:            decimal.NewFromInt(1),
		MaxAmount:            decimal.NewFromInt(100),
		MaxRequestsPerMinute: 3,
		MaxLoginAttempts:     3,
		LockoutDuration:      15 * time.Minute,
		JWTSecret:            "test-secret",
		TokenTTL:             24 * time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:   username,
		Status:     models.UserStatusActive,
		PointsDate: baseTime.UTC().Format("2006-01-02"),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createGame(t *testing.T, db *gorm.DB, code string) *models.Game {
	t.Helper()
	game := &models.Game{Code: code, Name: code, Category: "puzzle", IsActive: true}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	return game
}

// seedBalance grants points through the ledger so the entry chain
// holds from the start.
func seedBalance(t *testing.T, db *gorm.DB, ledger *services.Ledger, user *models.User, points int64) {
	t.Helper()
	entry, err := ledger.Append(db, user.ID, models.TrxEarn, points, services.TrxMeta{Note: "seed"})
	if err != nil {
		t.Fatalf("failed to seed balance: %v", err)
	}
	user.Points = entry.PointsBalance
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to save user: %v", err)
	}
}

func reload[T any](t *testing.T, db *gorm.DB, id uint) *T {
	t.Helper()
	out := new(T)
	if err := db.First(out, id).Error; err != nil {
		t.Fatalf("failed to reload record %d: %v", id, err)
	}
	return out
}
