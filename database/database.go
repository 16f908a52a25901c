package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"playpoin/config"
	"playpoin/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	DB = db
	log.Info("connected to database")

	if cfg.DBAutoMigrate {
		log.Info("starting auto-migration")
		if err := Migrate(DB); err != nil {
			log.WithError(err).Fatal("failed to auto-migrate database")
		}
		log.Info("auto migration completed")
	}
}

// Migrate applies the schema for every entity. Tests reuse it against an
// in-memory sqlite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.GameSession{},
		&models.Transaction{},
		&models.WithdrawRequest{},
	)
}
