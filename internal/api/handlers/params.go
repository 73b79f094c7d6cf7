package handlers

import (
	"strconv"

	"foodgram/domain"

	"github.com/gofiber/fiber/v2"
)

// pathID parses the :id segment. Ids that cannot name a row are reported as
// missing, the same as an id with no row behind it.
func pathID(c *fiber.Ctx, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

// recipesLimit honours recipes_limit only when it is a plain run of digits;
// any other value means no limit.
func recipesLimit(c *fiber.Ctx) *int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &limit
}

func pagination(c *fiber.Ctx) domain.Pagination {
	return domain.Pagination{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
}

func queryFlag(c *fiber.Ctx, key string) bool {
	switch c.Query(key) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
