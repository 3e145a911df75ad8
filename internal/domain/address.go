package domain

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Label      string    `json:"label,omitempty"`
	PostalCode string    `json:"postal_code"`
	Street     string    `json:"street"`
	Number     string    `json:"number"`
	Complement string    `json:"complement,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateAddressRequest struct {
	Label      string `json:"label"`
	PostalCode string `json:"postal_code" validate:"required,min=5"`
	Street     string `json:"street" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Complement string `json:"complement"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
}

type UpdateAddressRequest struct {
	Label      *string `json:"label"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=5"`
	Street     *string `json:"street"`
	Number     *string `json:"number"`
	Complement *string `json:"complement"`
	City       *string `json:"city"`
	State      *string `json:"state"`
}
