package play

import (
	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/models"
)

// ListGames returns the playable catalog.
func (h *Handler) ListGames(c *fiber.Ctx) error {
	var games []models.Game
	q := h.DB.Where("is_active = true").Order("name ASC")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&games).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_GAMES")
	}
	return helpers.JSONSuccess(c, "Games retrieved successfully", games)
}
