package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(onlyActive bool) ([]domain.Category, error) {
	query := `SELECT id, name, slug, active, created_at FROM categories`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("categories query error: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("category scan error: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	return r.getWhere(`id = $1`, id)
}

func (r *CategoryRepository) GetBySlug(slug string) (*domain.Category, error) {
	return r.getWhere(`slug = $1`, slug)
}

func (r *CategoryRepository) getWhere(where string, arg interface{}) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRow(
		`SELECT id, name, slug, active, created_at FROM categories WHERE `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Active, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("category query error: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(category *domain.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, slug, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.Name, category.Slug, category.Active, category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("category insert error: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(category *domain.Category) error {
	res, err := r.db.Exec(
		`UPDATE categories SET name = $2, slug = $3, active = $4 WHERE id = $1`,
		category.ID, category.Name, category.Slug, category.Active,
	)
	if err != nil {
		return fmt.Errorf("category update error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("category not found")
	}
	return nil
}
