package play

import (
	"gorm.io/gorm"

	"playpoin/models"
	"playpoin/services"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
}

func NewHandler(db *gorm.DB, sessions *services.SessionManager) *Handler {
	return &Handler{DB: db, Sessions: sessions}
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}

// ownSession rejects calls against sessions the caller does not own.
func (h *Handler) ownSession(userID, sessionID uint) error {
	var session models.GameSession
	if err := h.DB.First(&session, sessionID).Error; err != nil {
		return services.ErrSessionNotFound
	}
	if session.UserID != userID {
		return services.ErrSessionNotFound
	}
	return nil
}
