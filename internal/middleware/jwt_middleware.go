package middleware

import (
	"log"
	"strings"

	"eats/internal/models"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Identify is a Fiber middleware that resolves the presented JWT to an account.
// The token is read from "Authorization: Bearer <token>", the "token" header or,
// for websocket upgrades, the "token" query parameter. A missing or invalid token
// leaves the request anonymous; RequireRoles decides whether that is acceptable.
func Identify(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Next()
		}

		user, err := authService.Identify(c.UserContext(), tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Next()
		}

		// Store the identity in Fiber context for subsequent handlers
		c.Locals(identityKey, user)
		return c.Next()
	}
}

// CurrentUser returns the identity resolved by Identify, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(identityKey).(*models.User)
	return user
}

func bearerToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if token := c.Get("token"); token != "" {
		return token
	}
	return c.Query("token")
}
