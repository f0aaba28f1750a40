package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key carrying the authenticated user id.
const UserIDKey = "userID"

// Identity extracts the user id the upstream gateway authenticated. The core
// trusts this value; token verification happens before traffic reaches us.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "missing authenticated user identity",
			})
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
