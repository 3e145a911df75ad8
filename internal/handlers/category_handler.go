package handlers

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/httpx"
	"github.com/bakehouse-commerce/storefront-api/internal/service"
	"github.com/bakehouse-commerce/storefront-api/internal/validation"
)

type CategoryHandler struct {
	categories *service.CategoryService
	validate   *validatorv10.Validate
}

func NewCategoryHandler(categories *service.CategoryService, validate *validatorv10.Validate) *CategoryHandler {
	return &CategoryHandler{categories: categories, validate: validate}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(false)
	if err != nil {
		return err
	}
	return httpx.Success(c, categories)
}

func (h *CategoryHandler) AdminList(c *fiber.Ctx) error {
	categories, err := h.categories.List(true)
	if err != nil {
		return err
	}
	return httpx.Success(c, categories)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req domain.CreateCategoryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	category, err := h.categories.Create(req)
	if err != nil {
		return err
	}
	return httpx.Created(c, category)
}

func (h *CategoryHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.ToggleActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.BadRequest("invalid request body")
	}

	category, err := h.categories.ToggleActive(id, req.Active)
	if err != nil {
		return err
	}
	return httpx.Success(c, category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.UpdateCategoryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	category, err := h.categories.Update(id, req)
	if err != nil {
		return err
	}
	return httpx.Success(c, category)
}
