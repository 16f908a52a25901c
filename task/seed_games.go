package task

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"playpoin/models"
)

var defaultGames = []models.Game{
	{Code: "fruit-crush", Name: "Fruit Crush", Category: "puzzle", IsActive: true},
	{Code: "bubble-pop", Name: "Bubble Pop", Category: "puzzle", IsActive: true},
	{Code: "solitaire-rush", Name: "Solitaire Rush", Category: "cards", IsActive: true},
	{Code: "word-blitz", Name: "Word Blitz", Category: "word", IsActive: true},
	{Code: "coin-runner", Name: "Coin Runner", Category: "arcade", IsActive: true},
	{Code: "block-stack", Name: "Block Stack", Category: "arcade", IsActive: true},
	{Code: "quiz-royale", Name: "Quiz Royale", Category: "trivia", IsActive: true},
	{Code: "mahjong-trails", Name: "Mahjong Trails", Category: "puzzle", IsActive: true},
}

// SeedGames inserts any missing default games. Safe to run on every
// start.
func SeedGames(db *gorm.DB) error {
	seeded := 0
	for _, game := range defaultGames {
		var existing models.Game
		err := db.Where("code = ?", game.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&game).Error; err != nil {
			return err
		}
		seeded++
	}
	if seeded > 0 {
		log.WithField("games", seeded).Info("seeded game catalog")
	}
	return nil
}
