package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type AddressStore interface {
	ListByUser(userID uuid.UUID) ([]domain.Address, error)
	GetByID(id uuid.UUID) (*domain.Address, error)
	Create(address *domain.Address) error
	Update(address *domain.Address) error
	Delete(id uuid.UUID) error
}

type AddressService struct {
	addresses AddressStore
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) List(userID uuid.UUID) ([]domain.Address, error) {
	return s.addresses.ListByUser(userID)
}

func (s *AddressService) Create(userID uuid.UUID, req domain.CreateAddressRequest) (*domain.Address, error) {
	address := &domain.Address{
		ID:         uuid.New(),
		UserID:     userID,
		Label:      req.Label,
		PostalCode: req.PostalCode,
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		City:       req.City,
		State:      req.State,
		CreatedAt:  time.Now(),
	}
	if err := s.addresses.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update re-derives ownership per request; addresses of other users surface
// as not-found.
func (s *AddressService) Update(userID, id uuid.UUID, req domain.UpdateAddressRequest) (*domain.Address, error) {
	address, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		address.Label = *req.Label
	}
	if req.PostalCode != nil {
		address.PostalCode = *req.PostalCode
	}
	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.Number != nil {
		address.Number = *req.Number
	}
	if req.Complement != nil {
		address.Complement = *req.Complement
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}

	if err := s.addresses.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Delete(userID, id uuid.UUID) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.addresses.Delete(id)
}

func (s *AddressService) owned(userID, id uuid.UUID) (*domain.Address, error) {
	address, err := s.addresses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, domain.NotFound("address not found")
	}
	return address, nil
}
