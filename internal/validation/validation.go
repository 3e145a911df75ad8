package validation

import (
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

func New() *validatorv10.Validate {
	return validatorv10.New()
}

// BindAndValidate parses the JSON body into out and runs struct validation.
// Failures come back as 400 domain errors for the central error handler.
func BindAndValidate(c *fiber.Ctx, out interface{}, v *validatorv10.Validate) error {
	if err := c.BodyParser(out); err != nil {
		return domain.BadRequest("invalid request body")
	}
	if err := v.Struct(out); err != nil {
		return domain.BadRequest(describe(err))
	}
	return nil
}

func describe(err error) string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
