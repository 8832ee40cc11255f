package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "coachingku_backend/internals/helpers"
)

// Required parses the bearer token and stores claims in Locals. Requests
// without a valid token are rejected.
func Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer"))
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing bearer token")
		}
		claims, err := helper.ParseToken(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals("user_id", claims.Subject)
		c.Locals("role", claims.Role)
		c.Locals("class", claims.Class)
		c.Locals("section", claims.Section)
		return c.Next()
	}
}

// AdminOnly must be chained after Required.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "admin" && role != "staff" {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// StudentOrAdmin allows authenticated students as well as staff.
func StudentOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		switch role {
		case "admin", "staff", "student":
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Authentication required")
	}
}
