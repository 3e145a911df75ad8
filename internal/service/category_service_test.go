package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type fakeCategoryStore struct {
	categories map[uuid.UUID]*domain.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (f *fakeCategoryStore) List(onlyActive bool) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		if onlyActive && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryStore) GetByID(id uuid.UUID) (*domain.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryStore) GetBySlug(slug string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) Create(category *domain.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) Update(category *domain.Category) error {
	f.categories[category.ID] = category
	return nil
}

func TestCategoryCreateGeneratesSlug(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	category, err := svc.Create(domain.CreateCategoryRequest{Name: "Bolos & Tortas"})
	require.NoError(t, err)
	assert.Equal(t, "bolos-tortas", category.Slug)
	assert.True(t, category.Active)
}

func TestCategoryCreateRejectsDuplicateSlug(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	_, err := svc.Create(domain.CreateCategoryRequest{Name: "Doces"})
	require.NoError(t, err)

	// explicit slug colliding with the generated one
	_, err = svc.Create(domain.CreateCategoryRequest{Name: "Outros", Slug: "Doces"})
	requireDomainError(t, err, 400)
}

func TestCategoryCreateRejectsEmptyName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())

	_, err := svc.Create(domain.CreateCategoryRequest{Name: "!!!"})
	requireDomainError(t, err, 400)
}

func TestCategoryUpdate(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)

	category, err := svc.Create(domain.CreateCategoryRequest{Name: "Doces"})
	require.NoError(t, err)

	inactive := false
	name := "Doces Finos"
	updated, err := svc.Update(category.ID, domain.UpdateCategoryRequest{Name: &name, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Doces Finos", updated.Name)
	assert.Equal(t, "doces", updated.Slug, "slug only changes when requested")
	assert.False(t, updated.Active)

	_, err = svc.Update(uuid.New(), domain.UpdateCategoryRequest{})
	requireDomainError(t, err, 404)
}

func TestCategoryListFiltersInactive(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)

	_, err := svc.Create(domain.CreateCategoryRequest{Name: "Doces"})
	require.NoError(t, err)
	hidden, err := svc.Create(domain.CreateCategoryRequest{Name: "Salgados"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(hidden.ID, domain.UpdateCategoryRequest{Active: &inactive})
	require.NoError(t, err)

	public, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	admin, err := svc.List(true)
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}
