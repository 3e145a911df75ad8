package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type AddressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) ListByUser(userID uuid.UUID) ([]domain.Address, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, label, postal_code, street, number, complement, city, state, created_at
		 FROM addresses WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("addresses query error: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.PostalCode, &a.Street, &a.Number, &a.Complement, &a.City, &a.State, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("address scan error: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) GetByID(id uuid.UUID) (*domain.Address, error) {
	var a domain.Address
	err := r.db.QueryRow(
		`SELECT id, user_id, label, postal_code, street, number, complement, city, state, created_at
		 FROM addresses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.UserID, &a.Label, &a.PostalCode, &a.Street, &a.Number, &a.Complement, &a.City, &a.State, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("address query error: %w", err)
	}
	return &a, nil
}

func (r *AddressRepository) Create(address *domain.Address) error {
	_, err := r.db.Exec(
		`INSERT INTO addresses (id, user_id, label, postal_code, street, number, complement, city, state, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		address.ID, address.UserID, address.Label, address.PostalCode, address.Street,
		address.Number, address.Complement, address.City, address.State, address.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("address insert error: %w", err)
	}
	return nil
}

func (r *AddressRepository) Update(address *domain.Address) error {
	_, err := r.db.Exec(
		`UPDATE addresses SET label = $2, postal_code = $3, street = $4, number = $5,
		 complement = $6, city = $7, state = $8 WHERE id = $1`,
		address.ID, address.Label, address.PostalCode, address.Street,
		address.Number, address.Complement, address.City, address.State,
	)
	if err != nil {
		return fmt.Errorf("address update error: %w", err)
	}
	return nil
}

func (r *AddressRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("address delete error: %w", err)
	}
	return nil
}
