package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ValidateMatchID rejects requests whose :matchId parameter is not a uuid.
func ValidateMatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Params("matchId")); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "match ID must be a uuid",
			})
		}
		return c.Next()
	}
}
