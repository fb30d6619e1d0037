package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/utils"
)

// JWTFromHeader reads a bearer token from the Authorization header and
// stores the verified claims in locals.
func JWTFromHeader(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "No token provided",
			})
		}

		claims, err := utils.ParseJWT(secret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token",
			})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
