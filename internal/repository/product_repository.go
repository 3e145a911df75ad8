package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListProductsParams narrows the catalog listing. Page is 1-indexed.
type ListProductsParams struct {
	Search     string
	CategoryID *uuid.UUID
	OnlyActive bool
	Page       int
	Limit      int
}

const productColumns = `p.id, p.category_id, p.name, p.slug, p.description, p.price_cents, p.stock, p.active, p.created_at, p.updated_at`

func scanProduct(s interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	err := s.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.PriceCents, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Images = []domain.ProductImage{}
	return &p, nil
}

// List returns one page of products plus the unpaginated total for the same
// filters. Search is a case-insensitive substring match over name and
// description.
func (r *ProductRepository) List(params ListProductsParams) ([]*domain.Product, int64, error) {
	var conditions []string
	var args []interface{}

	if params.OnlyActive {
		conditions = append(conditions, "p.active = TRUE")
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}
	if params.CategoryID != nil {
		args = append(args, *params.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("product count error: %w", err)
	}

	args = append(args, params.Limit, (params.Page-1)*params.Limit)
	query := fmt.Sprintf(
		`SELECT %s FROM products p%s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("products query error: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("product scan error: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("products iteration error: %w", err)
	}

	if err := r.attachRelations(products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) GetByID(id uuid.UUID) (*domain.Product, error) {
	return r.getWhere(`p.id = $1`, id)
}

// GetBySlug optionally restricts to active products for the public detail
// view; deactivated products stay reachable for the back office.
func (r *ProductRepository) GetBySlug(slug string, onlyActive bool) (*domain.Product, error) {
	where := `p.slug = $1`
	if onlyActive {
		where += ` AND p.active = TRUE`
	}
	return r.getWhere(where, slug)
}

func (r *ProductRepository) getWhere(where string, arg interface{}) (*domain.Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products p WHERE `+where, arg)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product query error: %w", err)
	}
	if err := r.attachRelations([]*domain.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByIDs returns the products matching the given ids; missing ids are
// simply absent from the result.
func (r *ProductRepository) GetByIDs(ids []uuid.UUID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}

	rows, err := r.db.Query(
		`SELECT `+productColumns+` FROM products p WHERE p.id = ANY($1::uuid[])`,
		pq.Array(strs),
	)
	if err != nil {
		return nil, fmt.Errorf("products query error: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("product scan error: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Create(product *domain.Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction begin error: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO products (id, category_id, name, slug, description, price_cents, stock, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		product.ID, product.CategoryID, product.Name, product.Slug, product.Description,
		product.PriceCents, product.Stock, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("product insert error: %w", err)
	}

	if err := insertImages(tx, product.ID, product.Images); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit error: %w", err)
	}
	return nil
}

// Update rewrites the product row; when replaceImages is set the image list
// is replaced wholesale, matching the admin edit form semantics.
func (r *ProductRepository) Update(product *domain.Product, replaceImages bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction begin error: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE products SET category_id = $2, name = $3, slug = $4, description = $5,
		 price_cents = $6, stock = $7, active = $8, updated_at = NOW() WHERE id = $1`,
		product.ID, product.CategoryID, product.Name, product.Slug, product.Description,
		product.PriceCents, product.Stock, product.Active,
	)
	if err != nil {
		return fmt.Errorf("product update error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("product not found")
	}

	if replaceImages {
		if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = $1`, product.ID); err != nil {
			return fmt.Errorf("product images delete error: %w", err)
		}
		if err := insertImages(tx, product.ID, product.Images); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit error: %w", err)
	}
	return nil
}

func (r *ProductRepository) SetActive(id uuid.UUID, active bool) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE products SET active = $2, updated_at = NOW() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return false, fmt.Errorf("product toggle error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func insertImages(tx *sql.Tx, productID uuid.UUID, images []domain.ProductImage) error {
	for i, img := range images {
		id := img.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(
			`INSERT INTO product_images (id, product_id, url, alt, position) VALUES ($1, $2, $3, $4, $5)`,
			id, productID, img.URL, img.Alt, i,
		)
		if err != nil {
			return fmt.Errorf("product image insert error: %w", err)
		}
	}
	return nil
}

// attachRelations loads images and categories for the given products.
func (r *ProductRepository) attachRelations(products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	productIDs := make([]string, 0, len(products))
	categoryIDs := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		productIDs = append(productIDs, p.ID.String())
		categoryIDs = append(categoryIDs, p.CategoryID.String())
	}

	rows, err := r.db.Query(
		`SELECT id, product_id, url, alt, position FROM product_images
		 WHERE product_id = ANY($1::uuid[]) ORDER BY position ASC`,
		pq.Array(productIDs),
	)
	if err != nil {
		return fmt.Errorf("product images query error: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.Position); err != nil {
			return fmt.Errorf("product image scan error: %w", err)
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("product images iteration error: %w", err)
	}

	catRows, err := r.db.Query(
		`SELECT id, name, slug, active, created_at FROM categories WHERE id = ANY($1::uuid[])`,
		pq.Array(categoryIDs),
	)
	if err != nil {
		return fmt.Errorf("categories query error: %w", err)
	}
	defer catRows.Close()
	catByID := make(map[uuid.UUID]*domain.Category)
	for catRows.Next() {
		var c domain.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Slug, &c.Active, &c.CreatedAt); err != nil {
			return fmt.Errorf("category scan error: %w", err)
		}
		cat := c
		catByID[c.ID] = &cat
	}
	for _, p := range products {
		p.Category = catByID[p.CategoryID]
	}
	return nil
}
