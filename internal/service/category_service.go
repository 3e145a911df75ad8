package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type CategoryStore interface {
	List(onlyActive bool) ([]domain.Category, error)
	GetByID(id uuid.UUID) (*domain.Category, error)
	GetBySlug(slug string) (*domain.Category, error)
	Create(category *domain.Category) error
	Update(category *domain.Category) error
}

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns active categories for the public listing; the back office
// sees deactivated ones too.
func (s *CategoryService) List(includeInactive bool) ([]domain.Category, error) {
	return s.categories.List(!includeInactive)
}

func (s *CategoryService) Create(req domain.CreateCategoryRequest) (*domain.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = req.Name
	}
	slug = domain.Slugify(slug)
	if slug == "" {
		return nil, domain.BadRequest("category name required")
	}

	existing, err := s.categories.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.BadRequest("category slug already exists")
	}

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      slug,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ToggleActive(id uuid.UUID, active bool) (*domain.Category, error) {
	return s.Update(id, domain.UpdateCategoryRequest{Active: &active})
}

func (s *CategoryService) Update(id uuid.UUID, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("category not found")
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		slug := domain.Slugify(*req.Slug)
		if slug != category.Slug {
			existing, err := s.categories.GetBySlug(slug)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.BadRequest("category slug already exists")
			}
			category.Slug = slug
		}
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}
