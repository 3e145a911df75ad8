package handlers

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/httpx"
	"github.com/bakehouse-commerce/storefront-api/internal/service"
	"github.com/bakehouse-commerce/storefront-api/internal/validation"
)

type BannerHandler struct {
	banners  *service.BannerService
	validate *validatorv10.Validate
}

func NewBannerHandler(banners *service.BannerService, validate *validatorv10.Validate) *BannerHandler {
	return &BannerHandler{banners: banners, validate: validate}
}

// List serves the public storefront: active banners only.
func (h *BannerHandler) List(c *fiber.Ctx) error {
	banners, err := h.banners.List(true)
	if err != nil {
		return err
	}
	return httpx.Success(c, banners)
}

func (h *BannerHandler) AdminList(c *fiber.Ctx) error {
	banners, err := h.banners.List(false)
	if err != nil {
		return err
	}
	return httpx.Success(c, banners)
}

func (h *BannerHandler) AdminGet(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	banner, err := h.banners.GetByID(id)
	if err != nil {
		return err
	}
	return httpx.Success(c, banner)
}

func (h *BannerHandler) Create(c *fiber.Ctx) error {
	var req domain.CreateBannerRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	banner, err := h.banners.Create(req)
	if err != nil {
		return err
	}
	return httpx.Created(c, banner)
}

func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.UpdateBannerRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	banner, err := h.banners.Update(id, req)
	if err != nil {
		return err
	}
	return httpx.Success(c, banner)
}

func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.banners.Delete(id); err != nil {
		return err
	}
	return httpx.NoContent(c)
}

func (h *BannerHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	banner, err := h.banners.ToggleActive(id)
	if err != nil {
		return err
	}
	return httpx.Success(c, banner)
}
