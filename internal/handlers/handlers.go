package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

// uuidParam parses a path parameter as a UUID, failing the request with a
// 400 rather than leaking a raw parse error.
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.BadRequest("invalid " + name)
	}
	return id, nil
}
