package handlers

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/httpx"
	"github.com/bakehouse-commerce/storefront-api/internal/service"
	"github.com/bakehouse-commerce/storefront-api/internal/validation"
)

type ProductHandler struct {
	products *service.ProductService
	validate *validatorv10.Validate
}

func NewProductHandler(products *service.ProductService, validate *validatorv10.Validate) *ProductHandler {
	return &ProductHandler{products: products, validate: validate}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.products.List(q)
	if err != nil {
		return err
	}
	return httpx.Success(c, page)
}

func (h *ProductHandler) GetBySlug(c *fiber.Ctx) error {
	product, err := h.products.GetBySlug(c.Params("slug"))
	if err != nil {
		return err
	}
	return httpx.Success(c, product)
}

func (h *ProductHandler) AdminList(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.products.ListAll(q)
	if err != nil {
		return err
	}
	return httpx.Success(c, page)
}

func (h *ProductHandler) AdminGet(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.GetByID(id)
	if err != nil {
		return err
	}
	return httpx.Success(c, product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req domain.CreateProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	product, err := h.products.Create(req)
	if err != nil {
		return err
	}
	return httpx.Created(c, product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.UpdateProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	product, err := h.products.Update(id, req)
	if err != nil {
		return err
	}
	return httpx.Success(c, product)
}

func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.ToggleActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.BadRequest("invalid request body")
	}

	product, err := h.products.ToggleActive(id, req.Active)
	if err != nil {
		return err
	}
	return httpx.Success(c, product)
}

func listQuery(c *fiber.Ctx) (service.ListQuery, error) {
	q := service.ListQuery{
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, domain.BadRequest("invalid category_id")
		}
		q.CategoryID = &id
	}
	return q, nil
}
