package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID      `json:"id"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	PriceCents  int64          `json:"price_cents"`
	Stock       int            `json:"stock"`
	Active      bool           `json:"active"`
	Images      []ProductImage `json:"images"`
	Category    *Category      `json:"category,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	Alt       string    `json:"alt,omitempty"`
	Position  int       `json:"position"`
}

type CreateProductRequest struct {
	CategoryID  uuid.UUID             `json:"category_id" validate:"required"`
	Name        string                `json:"name" validate:"required,min=1"`
	Slug        string                `json:"slug" validate:"omitempty,min=1"`
	Description string                `json:"description"`
	Price       string                `json:"price" validate:"required"`
	Stock       *int                  `json:"stock" validate:"omitempty,min=0"`
	Active      *bool                 `json:"active"`
	Images      []ProductImageRequest `json:"images" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	CategoryID  *uuid.UUID            `json:"category_id"`
	Name        *string               `json:"name" validate:"omitempty,min=1"`
	Slug        *string               `json:"slug" validate:"omitempty,min=1"`
	Description *string               `json:"description"`
	Price       *string               `json:"price"`
	Stock       *int                  `json:"stock" validate:"omitempty,min=0"`
	Active      *bool                 `json:"active"`
	Images      []ProductImageRequest `json:"images" validate:"omitempty,dive"`
}

type ProductImageRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt"`
}

type ToggleActiveRequest struct {
	Active bool `json:"active"`
}
