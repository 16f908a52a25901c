package helpers

import "github.com/gofiber/fiber/v2"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Pagination reads limit/offset query params with sane bounds.
func Pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
