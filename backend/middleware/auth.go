package middleware

import (
	"tracker/backend/config"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// AuthMiddleware rejects requests without a valid token and stores the
// caller's id in the request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return err
		}
		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthMiddleware, or 0 outside a protected route.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}
