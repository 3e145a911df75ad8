package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/repository"
)

type fakeProductStore struct {
	products map[uuid.UUID]*domain.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[uuid.UUID]*domain.Product)}
}

func (f *fakeProductStore) List(params repository.ListProductsParams) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, p := range f.products {
		if params.OnlyActive && !p.Active {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))

	start := (params.Page - 1) * params.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeProductStore) GetByID(id uuid.UUID) (*domain.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductStore) GetBySlug(slug string, onlyActive bool) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug && (!onlyActive || p.Active) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductStore) Create(product *domain.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductStore) Update(product *domain.Product, replaceImages bool) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductStore) SetActive(id uuid.UUID, active bool) (bool, error) {
	p := f.products[id]
	if p == nil {
		return false, nil
	}
	p.Active = active
	return true, nil
}

type fakeCategoryFinder struct {
	categories map[uuid.UUID]*domain.Category
}

func (f *fakeCategoryFinder) GetByID(id uuid.UUID) (*domain.Category, error) {
	return f.categories[id], nil
}

type productFixture struct {
	svc        *ProductService
	store      *fakeProductStore
	categoryID uuid.UUID
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	categoryID := uuid.New()
	store := newFakeProductStore()
	categories := &fakeCategoryFinder{categories: map[uuid.UUID]*domain.Category{
		categoryID: {ID: categoryID, Name: "Cakes", Slug: "cakes", Active: true},
	}}
	return &productFixture{
		svc:        NewProductService(store, categories),
		store:      store,
		categoryID: categoryID,
	}
}

func (fx *productFixture) seed(t *testing.T, n int, active bool) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := uuid.New()
		fx.store.products[id] = &domain.Product{
			ID:         id,
			CategoryID: fx.categoryID,
			Name:       "Item",
			Slug:       uuid.NewString(),
			PriceCents: 1000,
			Active:     active,
			CreatedAt:  time.Now(),
		}
	}
}

func TestListPaginates(t *testing.T) {
	fx := newProductFixture(t)
	fx.seed(t, 25, true)

	page, err := fx.svc.List(ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(3), page.Pages, "25 items at 10 per page round up to 3")
	assert.Len(t, page.Items, 10)

	page, err = fx.svc.List(ListQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
}

func TestListDefaultsAndBounds(t *testing.T) {
	fx := newProductFixture(t)
	fx.seed(t, 3, true)

	page, err := fx.svc.List(ListQuery{Page: -2, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.Limit)

	page, err = fx.svc.List(ListQuery{Page: 1, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
}

func TestListHidesInactiveFromPublic(t *testing.T) {
	fx := newProductFixture(t)
	fx.seed(t, 2, true)
	fx.seed(t, 3, false)

	page, err := fx.svc.List(ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	all, err := fx.svc.ListAll(ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.Total)
}

func TestCreateProduct(t *testing.T) {
	fx := newProductFixture(t)

	stock := 5
	product, err := fx.svc.Create(domain.CreateProductRequest{
		CategoryID: fx.categoryID,
		Name:       "Pão de Mel",
		Price:      "12,50",
		Stock:      &stock,
		Images: []domain.ProductImageRequest{
			{URL: "https://cdn.example.com/pao-de-mel.jpg", Alt: "Pão de mel"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "pao-de-mel", product.Slug)
	assert.Equal(t, int64(1250), product.PriceCents)
	assert.Equal(t, 5, product.Stock)
	assert.True(t, product.Active)
	require.Len(t, product.Images, 1)
	assert.Equal(t, 0, product.Images[0].Position)
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	fx := newProductFixture(t)

	req := domain.CreateProductRequest{CategoryID: fx.categoryID, Name: "Croissant", Price: "8.00"}
	_, err := fx.svc.Create(req)
	require.NoError(t, err)

	_, err = fx.svc.Create(req)
	requireDomainError(t, err, 400)
}

func TestCreateProductRejectsBadPriceAndCategory(t *testing.T) {
	fx := newProductFixture(t)

	_, err := fx.svc.Create(domain.CreateProductRequest{CategoryID: fx.categoryID, Name: "Croissant", Price: "free"})
	requireDomainError(t, err, 400)

	_, err = fx.svc.Create(domain.CreateProductRequest{CategoryID: uuid.New(), Name: "Croissant", Price: "8.00"})
	requireDomainError(t, err, 400)
}

func TestUpdateProduct(t *testing.T) {
	fx := newProductFixture(t)

	product, err := fx.svc.Create(domain.CreateProductRequest{CategoryID: fx.categoryID, Name: "Croissant", Price: "8.00"})
	require.NoError(t, err)

	newPrice := "9.50"
	newStock := 20
	updated, err := fx.svc.Update(product.ID, domain.UpdateProductRequest{Price: &newPrice, Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, int64(950), updated.PriceCents)
	assert.Equal(t, 20, updated.Stock)
	assert.Equal(t, "croissant", updated.Slug, "slug unchanged")

	_, err = fx.svc.Update(uuid.New(), domain.UpdateProductRequest{})
	requireDomainError(t, err, 404)
}

func TestToggleActiveHidesFromPublicSlugLookup(t *testing.T) {
	fx := newProductFixture(t)

	product, err := fx.svc.Create(domain.CreateProductRequest{CategoryID: fx.categoryID, Name: "Croissant", Price: "8.00"})
	require.NoError(t, err)

	_, err = fx.svc.ToggleActive(product.ID, false)
	require.NoError(t, err)

	_, err = fx.svc.GetBySlug("croissant")
	requireDomainError(t, err, 404)

	// still visible to the back office
	got, err := fx.svc.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}
