package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"phonetech/internal/apperrors"
	"phonetech/internal/services"
)

// AuthRequired checks for a valid bearer token and stores the caller's id
// and role in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.Unauthorized("authorization header is required")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return apperrors.Unauthorized("authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return err
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			return apperrors.Unauthorized("invalid or expired token")
		}
		c.Locals("user_id", userID)
		c.Locals("role", role)

		return c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given set. Must run
// after AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return apperrors.Forbidden("role %q is not authorized to access this route", role)
	}
}

// CallerID returns the authenticated user's id from the request locals.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// CallerRole returns the authenticated user's role from the request locals.
func CallerRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
