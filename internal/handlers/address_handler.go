package handlers

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/httpx"
	"github.com/bakehouse-commerce/storefront-api/internal/middleware"
	"github.com/bakehouse-commerce/storefront-api/internal/service"
	"github.com/bakehouse-commerce/storefront-api/internal/validation"
)

type AddressHandler struct {
	addresses *service.AddressService
	validate  *validatorv10.Validate
}

func NewAddressHandler(addresses *service.AddressService, validate *validatorv10.Validate) *AddressHandler {
	return &AddressHandler{addresses: addresses, validate: validate}
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	addresses, err := h.addresses.List(userID)
	if err != nil {
		return err
	}
	return httpx.Success(c, addresses)
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req domain.CreateAddressRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	address, err := h.addresses.Create(userID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, address)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.UpdateAddressRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	address, err := h.addresses.Update(userID, id, req)
	if err != nil {
		return err
	}
	return httpx.Success(c, address)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.addresses.Delete(userID, id); err != nil {
		return err
	}
	return httpx.NoContent(c)
}
