package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"playpoin/helpers"
	"playpoin/models"
)

type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if len(username) < 3 || len(username) > 32 {
		return helpers.JSONError(c, "INVALID_USERNAME")
	}
	if len(req.Password) < 8 {
		return helpers.JSONError(c, "PASSWORD_TOO_SHORT")
	}

	var existing models.User
	if err := h.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "USERNAME_TAKEN")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_HASH_PASSWORD")
	}

	now := time.Now()
	user := models.User{
		Username:     username,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		Status:       models.UserStatusActive,
		PointsDate:   now.UTC().Format("2006-01-02"),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_USER")
	}

	token, err := h.Tokens.Issue(&user, now)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_ISSUE_TOKEN")
	}

	return helpers.JSONSuccess(c, "User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}
