package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/repository"
)

type ProductStore interface {
	List(params repository.ListProductsParams) ([]*domain.Product, int64, error)
	GetByID(id uuid.UUID) (*domain.Product, error)
	GetBySlug(slug string, onlyActive bool) (*domain.Product, error)
	Create(product *domain.Product) error
	Update(product *domain.Product, replaceImages bool) error
	SetActive(id uuid.UUID, active bool) (bool, error)
}

type CategoryFinder interface {
	GetByID(id uuid.UUID) (*domain.Category, error)
}

type ProductService struct {
	products   ProductStore
	categories CategoryFinder
}

func NewProductService(products ProductStore, categories CategoryFinder) *ProductService {
	return &ProductService{products: products, categories: categories}
}

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 100
)

// ListQuery carries the catalog listing filters as received from the query
// string.
type ListQuery struct {
	Search     string
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

type ProductPage struct {
	Items []*domain.Product `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Pages int64             `json:"pages"`
}

// List serves the public catalog: active products only, paginated, with the
// total and ceiling-division page count.
func (s *ProductService) List(q ListQuery) (*ProductPage, error) {
	return s.list(q, true)
}

// ListAll is the admin variant: inactive products included.
func (s *ProductService) ListAll(q ListQuery) (*ProductPage, error) {
	return s.list(q, false)
}

func (s *ProductService) list(q ListQuery, onlyActive bool) (*ProductPage, error) {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := s.products.List(repository.ListProductsParams{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		OnlyActive: onlyActive,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Product{}
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return &ProductPage{Items: items, Total: total, Page: page, Limit: limit, Pages: pages}, nil
}

// GetBySlug serves the public detail view; deactivated products are hidden
// here but stay reachable by id through GetByID for the back office.
func (s *ProductService) GetBySlug(slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}
	return product, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}
	return product, nil
}

func (s *ProductService) Create(req domain.CreateProductRequest) (*domain.Product, error) {
	priceCents, err := domain.ParsePriceCents(req.Price)
	if err != nil {
		return nil, domain.BadRequest("invalid price")
	}

	category, err := s.categories.GetByID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.BadRequest("category not found")
	}

	slug := req.Slug
	if slug == "" {
		slug = req.Name
	}
	slug = domain.Slugify(slug)

	existing, err := s.products.GetBySlug(slug, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.BadRequest("product slug already exists")
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		return nil, domain.BadRequest("invalid stock")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		PriceCents:  priceCents,
		Stock:       stock,
		Active:      active,
		Images:      toImages(req.Images),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return s.GetByID(product.ID)
}

func (s *ProductService) Update(id uuid.UUID, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}

	if req.CategoryID != nil {
		category, err := s.categories.GetByID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.BadRequest("category not found")
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		slug := domain.Slugify(*req.Slug)
		if slug != product.Slug {
			existing, err := s.products.GetBySlug(slug, false)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.BadRequest("product slug already exists")
			}
			product.Slug = slug
		}
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		priceCents, err := domain.ParsePriceCents(*req.Price)
		if err != nil {
			return nil, domain.BadRequest("invalid price")
		}
		product.PriceCents = priceCents
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, domain.BadRequest("invalid stock")
		}
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	replaceImages := req.Images != nil
	if replaceImages {
		product.Images = toImages(req.Images)
	}

	if err := s.products.Update(product, replaceImages); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ProductService) ToggleActive(id uuid.UUID, active bool) (*domain.Product, error) {
	found, err := s.products.SetActive(id, active)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("product not found")
	}
	return s.GetByID(id)
}

func toImages(reqs []domain.ProductImageRequest) []domain.ProductImage {
	images := make([]domain.ProductImage, len(reqs))
	for i, img := range reqs {
		images[i] = domain.ProductImage{URL: img.URL, Alt: img.Alt, Position: i}
	}
	return images
}
