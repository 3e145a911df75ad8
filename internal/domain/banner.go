package domain

import (
	"time"

	"github.com/google/uuid"
)

// Banner is an admin-managed promotional entry, optionally pointing at a
// product. Its lifecycle is independent of the order workflow.
type Banner struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Subtitle  string            `json:"subtitle,omitempty"`
	ImageURL  string            `json:"image_url"`
	Link      string            `json:"link,omitempty"`
	ProductID *uuid.UUID        `json:"product_id,omitempty"`
	Product   *BannerProductRef `json:"product,omitempty"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

type BannerProductRef struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	PriceCents int64          `json:"price_cents"`
	Images     []ProductImage `json:"images,omitempty"`
}

type CreateBannerRequest struct {
	Title     string     `json:"title" validate:"required,min=1"`
	Subtitle  string     `json:"subtitle"`
	ImageURL  string     `json:"image_url" validate:"required,url"`
	Link      string     `json:"link" validate:"omitempty,url"`
	ProductID *uuid.UUID `json:"product_id"`
	Active    *bool      `json:"active"`
}

type UpdateBannerRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1"`
	Subtitle  *string    `json:"subtitle"`
	ImageURL  *string    `json:"image_url" validate:"omitempty,url"`
	Link      *string    `json:"link" validate:"omitempty,url"`
	ProductID *uuid.UUID `json:"product_id"`
	Active    *bool      `json:"active"`
}
