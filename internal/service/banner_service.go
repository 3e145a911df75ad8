package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type BannerStore interface {
	List(onlyActive bool) ([]*domain.Banner, error)
	GetByID(id uuid.UUID) (*domain.Banner, error)
	Create(banner *domain.Banner) error
	Update(banner *domain.Banner) error
	Delete(id uuid.UUID) (bool, error)
}

type BannerService struct {
	banners  BannerStore
	products ProductFinder
}

func NewBannerService(banners BannerStore, products ProductFinder) *BannerService {
	return &BannerService{banners: banners, products: products}
}

func (s *BannerService) List(onlyActive bool) ([]*domain.Banner, error) {
	banners, err := s.banners.List(onlyActive)
	if err != nil {
		return nil, err
	}
	if banners == nil {
		banners = []*domain.Banner{}
	}
	return banners, nil
}

func (s *BannerService) GetByID(id uuid.UUID) (*domain.Banner, error) {
	banner, err := s.banners.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, domain.NotFound("banner not found")
	}
	return banner, nil
}

func (s *BannerService) Create(req domain.CreateBannerRequest) (*domain.Banner, error) {
	if req.ProductID != nil {
		if err := s.productExists(*req.ProductID); err != nil {
			return nil, err
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	banner := &domain.Banner{
		ID:        uuid.New(),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		Link:      req.Link,
		ProductID: req.ProductID,
		Active:    active,
		CreatedAt: time.Now(),
	}
	if err := s.banners.Create(banner); err != nil {
		return nil, err
	}
	return s.GetByID(banner.ID)
}

func (s *BannerService) Update(id uuid.UUID, req domain.UpdateBannerRequest) (*domain.Banner, error) {
	banner, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = *req.Subtitle
	}
	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}
	if req.Link != nil {
		banner.Link = *req.Link
	}
	if req.ProductID != nil {
		if *req.ProductID == uuid.Nil {
			banner.ProductID = nil
		} else {
			if err := s.productExists(*req.ProductID); err != nil {
				return nil, err
			}
			banner.ProductID = req.ProductID
		}
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}

	if err := s.banners.Update(banner); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *BannerService) Delete(id uuid.UUID) error {
	found, err := s.banners.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return domain.NotFound("banner not found")
	}
	return nil
}

func (s *BannerService) ToggleActive(id uuid.UUID) (*domain.Banner, error) {
	banner, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	banner.Active = !banner.Active
	if err := s.banners.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) productExists(id uuid.UUID) error {
	products, err := s.products.GetByIDs([]uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return domain.BadRequest("product not found")
	}
	return nil
}
