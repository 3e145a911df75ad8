package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *domain.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("user insert error: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	return r.getWhere(`email = $1`, email)
}

func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	return r.getWhere(`id = $1`, id)
}

func (r *UserRepository) getWhere(where string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(
		`SELECT id, name, email, password_hash, role, created_at FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user query error: %w", err)
	}
	return &u, nil
}
