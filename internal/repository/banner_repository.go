package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type BannerRepository struct {
	db *sql.DB
}

func NewBannerRepository(db *sql.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

const bannerColumns = `b.id, b.title, b.subtitle, b.image_url, b.link, b.product_id, b.active, b.created_at`

func scanBanner(s interface{ Scan(...interface{}) error }) (*domain.Banner, error) {
	var b domain.Banner
	err := s.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.Link, &b.ProductID, &b.Active, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BannerRepository) List(onlyActive bool) ([]*domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners b`
	if onlyActive {
		query += ` WHERE b.active = TRUE`
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("banners query error: %w", err)
	}
	defer rows.Close()

	var banners []*domain.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("banner scan error: %w", err)
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("banners iteration error: %w", err)
	}

	if err := r.attachProducts(banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *BannerRepository) GetByID(id uuid.UUID) (*domain.Banner, error) {
	row := r.db.QueryRow(`SELECT `+bannerColumns+` FROM banners b WHERE b.id = $1`, id)
	b, err := scanBanner(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("banner query error: %w", err)
	}
	if err := r.attachProducts([]*domain.Banner{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BannerRepository) Create(banner *domain.Banner) error {
	_, err := r.db.Exec(
		`INSERT INTO banners (id, title, subtitle, image_url, link, product_id, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		banner.ID, banner.Title, banner.Subtitle, banner.ImageURL, banner.Link,
		banner.ProductID, banner.Active, banner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("banner insert error: %w", err)
	}
	return nil
}

func (r *BannerRepository) Update(banner *domain.Banner) error {
	res, err := r.db.Exec(
		`UPDATE banners SET title = $2, subtitle = $3, image_url = $4, link = $5, product_id = $6, active = $7
		 WHERE id = $1`,
		banner.ID, banner.Title, banner.Subtitle, banner.ImageURL, banner.Link,
		banner.ProductID, banner.Active,
	)
	if err != nil {
		return fmt.Errorf("banner update error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("banner not found")
	}
	return nil
}

func (r *BannerRepository) Delete(id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("banner delete error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// attachProducts resolves the optional product reference with its images.
func (r *BannerRepository) attachProducts(banners []*domain.Banner) error {
	productIDs := make([]string, 0, len(banners))
	for _, b := range banners {
		if b.ProductID != nil {
			productIDs = append(productIDs, b.ProductID.String())
		}
	}
	if len(productIDs) == 0 {
		return nil
	}

	rows, err := r.db.Query(
		`SELECT id, name, price_cents FROM products WHERE id = ANY($1::uuid[])`,
		pq.Array(productIDs),
	)
	if err != nil {
		return fmt.Errorf("banner products query error: %w", err)
	}
	defer rows.Close()

	refByID := make(map[uuid.UUID]*domain.BannerProductRef)
	for rows.Next() {
		var ref domain.BannerProductRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.PriceCents); err != nil {
			return fmt.Errorf("banner product scan error: %w", err)
		}
		p := ref
		refByID[ref.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return err
	}

	imgRows, err := r.db.Query(
		`SELECT id, product_id, url, alt, position FROM product_images
		 WHERE product_id = ANY($1::uuid[]) ORDER BY position ASC`,
		pq.Array(productIDs),
	)
	if err != nil {
		return fmt.Errorf("banner product images query error: %w", err)
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img domain.ProductImage
		if err := imgRows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.Position); err != nil {
			return fmt.Errorf("banner product image scan error: %w", err)
		}
		if ref, ok := refByID[img.ProductID]; ok {
			ref.Images = append(ref.Images, img)
		}
	}

	for _, b := range banners {
		if b.ProductID != nil {
			b.Product = refByID[*b.ProductID]
		}
	}
	return nil
}
