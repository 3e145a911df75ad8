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

type OrderHandler struct {
	orders   *service.OrderService
	validate *validatorv10.Validate
}

func NewOrderHandler(orders *service.OrderService, validate *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{orders: orders, validate: validate}
}

func (h *OrderHandler) Create(c *fiber.Ctx) (err error) {
	defer func() { middleware.RecordOrderOperation("create", err == nil) }()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req domain.CreateOrderRequest
	if err = validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	order, err := h.orders.Create(userID, req)
	if err != nil {
		return err
	}
	return httpx.Created(c, order)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListForUser(userID)
	if err != nil {
		return err
	}
	return httpx.Success(c, orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetForUser(userID, id)
	if err != nil {
		return err
	}
	return httpx.Success(c, order)
}

func (h *OrderHandler) Tracking(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	tracking, err := h.orders.GetTracking(userID, id)
	if err != nil {
		return err
	}
	return httpx.Success(c, tracking)
}

func (h *OrderHandler) Pay(c *fiber.Ctx) (err error) {
	defer func() { middleware.RecordOrderOperation("pay", err == nil) }()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Pay(userID, id)
	if err != nil {
		return err
	}
	return httpx.Success(c, order)
}

func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll()
	if err != nil {
		return err
	}
	return httpx.Success(c, orders)
}

func (h *OrderHandler) AdminGet(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetByID(id)
	if err != nil {
		return err
	}
	return httpx.Success(c, order)
}

func (h *OrderHandler) SetStatus(c *fiber.Ctx) (err error) {
	defer func() { middleware.RecordOrderOperation("set_status", err == nil) }()

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.SetOrderStatusRequest
	if err = validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	order, err := h.orders.SetStatus(id, req.Status)
	if err != nil {
		return err
	}
	return httpx.Success(c, order)
}

func (h *OrderHandler) Advance(c *fiber.Ctx) (err error) {
	defer func() { middleware.RecordOrderOperation("advance", err == nil) }()

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Advance(id)
	if err != nil {
		return err
	}
	return httpx.Success(c, order)
}

func (h *OrderHandler) UpdateDelivery(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.UpdateDeliveryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	delivery, err := h.orders.UpdateDelivery(id, req)
	if err != nil {
		return err
	}
	return httpx.Success(c, delivery)
}

func (h *OrderHandler) SetPaymentStatus(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req domain.SetPaymentStatusRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	payment, err := h.orders.SetPaymentStatus(id, req.Status)
	if err != nil {
		return err
	}
	return httpx.Success(c, payment)
}

func (h *OrderHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.orders.Dashboard()
	if err != nil {
		return err
	}
	return httpx.Success(c, dashboard)
}
