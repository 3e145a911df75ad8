package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/token"
)

const (
	localUserID = "userID"
	localRole   = "userRole"
)

// RequireAuth validates the Bearer token and stashes the caller identity
// in the request locals.
func RequireAuth(accessSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return domain.Unauthorized("missing bearer token")
		}

		claims, err := token.Parse(accessSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return domain.Unauthorized("invalid token")
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(localRole).(domain.Role)
		if !ok {
			return domain.Unauthorized("missing bearer token")
		}
		if role != domain.RoleAdmin {
			return domain.Forbidden("admin role required")
		}
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(localUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.Unauthorized("missing bearer token")
	}
	return id, nil
}
