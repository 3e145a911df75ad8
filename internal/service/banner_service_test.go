package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type fakeBannerStore struct {
	banners map[uuid.UUID]*domain.Banner
}

func newFakeBannerStore() *fakeBannerStore {
	return &fakeBannerStore{banners: make(map[uuid.UUID]*domain.Banner)}
}

func (f *fakeBannerStore) List(onlyActive bool) ([]*domain.Banner, error) {
	var out []*domain.Banner
	for _, b := range f.banners {
		if onlyActive && !b.Active {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBannerStore) GetByID(id uuid.UUID) (*domain.Banner, error) {
	return f.banners[id], nil
}

func (f *fakeBannerStore) Create(banner *domain.Banner) error {
	f.banners[banner.ID] = banner
	return nil
}

func (f *fakeBannerStore) Update(banner *domain.Banner) error {
	f.banners[banner.ID] = banner
	return nil
}

func (f *fakeBannerStore) Delete(id uuid.UUID) (bool, error) {
	if _, ok := f.banners[id]; !ok {
		return false, nil
	}
	delete(f.banners, id)
	return true, nil
}

func newBannerFixture() (*BannerService, uuid.UUID) {
	productID := uuid.New()
	products := &fakeProductFinder{products: map[uuid.UUID]*domain.Product{
		productID: {ID: productID, Name: "Wedding Cake", PriceCents: 99900},
	}}
	return NewBannerService(newFakeBannerStore(), products), productID
}

func TestBannerCreateValidatesProductRef(t *testing.T) {
	svc, productID := newBannerFixture()

	banner, err := svc.Create(domain.CreateBannerRequest{
		Title:     "Wedding season",
		ImageURL:  "https://cdn.example.com/wedding.jpg",
		ProductID: &productID,
	})
	require.NoError(t, err)
	assert.True(t, banner.Active)

	unknown := uuid.New()
	_, err = svc.Create(domain.CreateBannerRequest{
		Title:     "Broken",
		ImageURL:  "https://cdn.example.com/broken.jpg",
		ProductID: &unknown,
	})
	requireDomainError(t, err, 400)
}

func TestBannerToggleActive(t *testing.T) {
	svc, _ := newBannerFixture()

	banner, err := svc.Create(domain.CreateBannerRequest{Title: "Promo", ImageURL: "https://cdn.example.com/promo.jpg"})
	require.NoError(t, err)

	toggled, err := svc.ToggleActive(banner.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	public, err := svc.List(true)
	require.NoError(t, err)
	assert.Empty(t, public)

	admin, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, admin, 1)
}

func TestBannerDelete(t *testing.T) {
	svc, _ := newBannerFixture()

	banner, err := svc.Create(domain.CreateBannerRequest{Title: "Promo", ImageURL: "https://cdn.example.com/promo.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(banner.ID))
	err = svc.Delete(banner.ID)
	requireDomainError(t, err, 404)
}

func TestBannerUpdateClearsProductRef(t *testing.T) {
	svc, productID := newBannerFixture()

	banner, err := svc.Create(domain.CreateBannerRequest{
		Title:     "Promo",
		ImageURL:  "https://cdn.example.com/promo.jpg",
		ProductID: &productID,
	})
	require.NoError(t, err)
	require.NotNil(t, banner.ProductID)

	nilID := uuid.Nil
	updated, err := svc.Update(banner.ID, domain.UpdateBannerRequest{ProductID: &nilID})
	require.NoError(t, err)
	assert.Nil(t, updated.ProductID)
}
