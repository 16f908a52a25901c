package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"playpoin/config"
	"playpoin/database"
	"playpoin/jobs"
	"playpoin/logger"
	"playpoin/routes"
	"playpoin/services"
	"playpoin/task"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Setup(cfg)

	database.Connect(cfg)

	if cfg.SeedGames {
		if err := task.SeedGames(database.DB); err != nil {
			log.WithError(err).Fatal("failed to seed game catalog")
		}
	}

	var guard services.RateGuard
	if cfg.RedisAddr != "" {
		redisGuard, err := services.NewRedisGuard(cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer redisGuard.Close()
		guard = redisGuard
		log.Info("rate guard backed by redis")
	} else {
		guard = services.NewMemoryGuard(cfg)
		log.Info("rate guard in process memory")
	}

	ledger := services.NewLedger(database.DB)
	sessions := services.NewSessionManager(database.DB, cfg, ledger)
	gate := services.NewWithdrawGate(database.DB, cfg, ledger)
	tokens := services.NewTokenService(cfg)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())

	routes.Setup(app, &routes.Deps{
		DB:       database.DB,
		Tokens:   tokens,
		Guard:    guard,
		Sessions: sessions,
		Ledger:   ledger,
		Gate:     gate,
	})

	jobs.StartIdleSweeper(sessions, time.Duration(cfg.HeartbeatInterval)*time.Second)
	jobs.StartReconciler(database.DB, ledger, 10*time.Minute)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.WithField("addr", addr).Info("server starting")

	go func() {
		if err := app.Listen(addr); err != nil {
			log.WithError(err).Panic("failed to start server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("gracefully shutting down")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exited cleanly")
}
