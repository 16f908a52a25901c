package admin

import (
	"github.com/gofiber/fiber/v2"

	"playpoin/helpers"
	"playpoin/models"
)

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	limit, offset := helpers.Pagination(c)

	q := h.DB.Model(&models.User{}).Order("id ASC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("username LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_COUNT_USERS")
	}

	var users []models.User
	if err := q.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LIST_USERS")
	}

	return helpers.JSONSuccess(c, "Users retrieved", fiber.Map{
		"total": total,
		"users": users,
	})
}

type SetUserStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// SetUserStatus suspends, bans or reinstates an account. A non-active
// status blocks all accrual and withdrawal immediately.
func (h *Handler) SetUserStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_USER_ID")
	}

	var req SetUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	switch req.Status {
	case models.UserStatusActive, models.UserStatusSuspended, models.UserStatusBanned:
	default:
		return helpers.JSONError(c, "INVALID_STATUS")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
	}

	user.Status = req.Status
	if err := h.DB.Save(&user).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_USER")
	}

	return helpers.JSONSuccess(c, "User status updated", user)
}
