package middleware

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/domain"
)

// Keys under which the middleware stores request identity in fiber Locals.
const (
	LocalUser  = "user"  // *model.User
	LocalToken = "token" // raw bearer token key
	LocalRole  = "role"  // user role string
)

// TokenAuth resolves the bearer token to a user and checks the request
// against the Casbin policy, with the user's role as subject.
func TokenAuth(authSvc domain.AuthService, enforcer *casbin.Enforcer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Extract token
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing Authorization header"})
		}
		tokenKey := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Resolve to an active user
		user, err := authSvc.Authenticate(c.Context(), tokenKey)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Store identity in context for downstream handlers
		c.Locals(LocalUser, user)
		c.Locals(LocalToken, tokenKey)
		c.Locals(LocalRole, user.Role)

		// 3. Check permission: policies are defined per role, not per user
		obj := c.Path()
		act := c.Method()

		permit, err := enforcer.Enforce(user.Role, obj, act)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Permission check failed"})
		}

		if permit {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":  "Permission denied",
			"detail": fmt.Sprintf("Role %s is not allowed to %s %s", user.Role, act, obj),
		})
	}
}
