package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"playpoin/helpers"
	"playpoin/models"
	"playpoin/services"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return helpers.JSONError(c, "USERNAME_AND_PASSWORD_REQUIRED")
	}

	now := time.Now()
	lockKey := "login:" + username

	if err := h.Guard.CheckLockout(lockKey, now); err != nil {
		return helpers.ServiceError(c, err)
	}

	var user models.User
	err := h.DB.Where("username = ?", username).First(&user).Error
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	}
	if err != nil {
		if gErr := h.Guard.RegisterFailure(lockKey, now); errors.Is(gErr, services.ErrLockedOut) {
			return helpers.ServiceError(c, gErr)
		}
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}

	_ = h.Guard.ClearFailures(lockKey)

	token, err := h.Tokens.Issue(&user, now)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_ISSUE_TOKEN")
	}

	return helpers.JSONSuccess(c, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}
