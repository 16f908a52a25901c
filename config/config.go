package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config is loaded once at process start and never mutated afterwards.
// Every tunable that affects accrual or withdrawal thresholds lives here.
type Config struct {
	Env  string
	Host string
	Port string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret string
	TokenTTL  time.Duration

	// Accrual
	PointsPerClaim  int64
	CooldownSeconds int64
	DailyLimit      int64
	MaxPerUpdate    int64

	// Session
	HeartbeatInterval int64 // seconds, advisory for clients
	MaxIdleSeconds    int64

	// Withdrawal
	ToDollarRate int64 // points per 1 USDT
	MinWithdraw  int64 // minimum spendable points to open a request
	MinAmount    decimal.Decimal
	MaxAmount    decimal.Decimal

	// Abuse guard
	MaxRequestsPerMinute int
	MaxLoginAttempts     int
	LockoutDuration      time.Duration

	LogLevel string
	LogFile  string

	SeedGames bool
}

func Load() *Config {
	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Host: getEnv("HOST", "127.0.0.1"),
		Port: getEnv("PORT", "3000"),

		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "playpoin"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", true),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisPass: getEnv("REDIS_PASSWORD", ""),
		RedisDB:   int(getInt("REDIS_DB", 0)),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  getDuration("TOKEN_TTL_SECONDS", 24*time.Hour),

		PointsPerClaim:  getInt("POINTS_PER_CLAIM", 10),
		CooldownSeconds: getInt("COOLDOWN_SECONDS", 60),
		DailyLimit:      getInt("DAILY_LIMIT", 2880),
		MaxPerUpdate:    getInt("MAX_PER_UPDATE", 50),

		HeartbeatInterval: getInt("HEARTBEAT_INTERVAL", 20),
		MaxIdleSeconds:    getInt("MAX_IDLE_TIME", 300),

		ToDollarRate: getInt("TO_DOLLAR_RATE", 10000),
		MinWithdraw:  getInt("MIN_WITHDRAW", 10000),
		MinAmount:    getDecimal("MIN_AMOUNT", "1"),
		MaxAmount:    getDecimal("MAX_AMOUNT", "100"),

		MaxRequestsPerMinute: int(getInt("MAX_REQUESTS_PER_MINUTE", 60)),
		MaxLoginAttempts:     int(getInt("MAX_LOGIN_ATTEMPTS", 5)),
		LockoutDuration:      getDuration("LOCKOUT_DURATION", 15*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		SeedGames: getBool("SEED_GAMES", false),
	}
}

// Cooldown returns the claim cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// MaxIdle returns the idle timeout as a duration.
func (c *Config) MaxIdle() time.Duration {
	return time.Duration(c.MaxIdleSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration reads a value in whole seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func getDecimal(key, fallback string) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
