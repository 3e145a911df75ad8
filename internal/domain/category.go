package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Slug string `json:"slug" validate:"omitempty,min=1"`
}

type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Slug   *string `json:"slug" validate:"omitempty,min=1"`
	Active *bool   `json:"active"`
}
