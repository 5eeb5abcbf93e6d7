package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ListWindow holds the skip/limit window of a list query.
type ListWindow struct {
	Limit  int
	Offset int
}

const (
	defaultLimit = 100
	maxLimit     = 500
)

// ParseListWindow reads skip and limit query params with sane defaults.
func ParseListWindow(c *fiber.Ctx) ListWindow {
	limit := parseInt(c.Query("limit", ""), defaultLimit)
	skip := parseInt(c.Query("skip", ""), 0)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if skip < 0 {
		skip = 0
	}

	return ListWindow{Limit: limit, Offset: skip}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
