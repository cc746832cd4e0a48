package middleware

import (
	"eats/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Authorize decides whether identity may run an operation that requires one of roles.
// No roles means the operation is public. RoleAny admits any authenticated caller.
func Authorize(required []models.Role, identity *models.User) bool {
	if len(required) == 0 {
		return true
	}
	if identity == nil {
		return false
	}
	for _, role := range required {
		if role == models.RoleAny || role == identity.Role {
			return true
		}
	}
	return false
}

// RequireRoles rejects requests whose identity is not admitted by Authorize.
// Anonymous callers get 401, authenticated callers with another role get 403.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentUser(c)
		if Authorize(roles, identity) {
			return c.Next()
		}
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":      false,
				"message": "Authentication is required",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"ok":      false,
			"message": "You are not allowed to do this",
		})
	}
}
