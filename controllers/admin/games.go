package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/models"
)

func (h *Handler) ListGames(c *fiber.Ctx) error {
	limit, offset := helpers.Pagination(c)

	var games []models.Game
	if err := h.DB.Order("id ASC").Limit(limit).Offset(offset).Find(&games).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_GAMES")
	}
	return helpers.JSONSuccess(c, "Games retrieved", games)
}

type UpsertGameRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	IsActive *bool  `json:"is_active"`
}

func (h *Handler) CreateGame(c *fiber.Ctx) error {
	var req UpsertGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	code := strings.ToLower(strings.TrimSpace(req.Code))
	if code == "" || req.Name == "" {
		return helpers.JSONError(c, "CODE_AND_NAME_REQUIRED")
	}

	var existing models.Game
	if err := h.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "GAME_ALREADY_EXISTS")
	}

	game := models.Game{
		Code:     code,
		Name:     req.Name,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsActive != nil {
		game.IsActive = *req.IsActive
	}
	if err := h.DB.Create(&game).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_GAME")
	}
	return helpers.JSONSuccess(c, "Game created", game)
}

func (h *Handler) UpdateGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var req UpsertGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var game models.Game
	if err := h.DB.First(&game, id).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "GAME_NOT_FOUND")
	}

	if req.Name != "" {
		game.Name = req.Name
	}
	if req.Category != "" {
		game.Category = req.Category
	}
	if req.IsActive != nil {
		game.IsActive = *req.IsActive
	}
	if err := h.DB.Save(&game).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_GAME")
	}
	return helpers.JSONSuccess(c, "Game updated", game)
}
