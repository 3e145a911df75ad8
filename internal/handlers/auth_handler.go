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

type AuthHandler struct {
	auth     *service.AuthService
	validate *validatorv10.Validate
}

func NewAuthHandler(auth *service.AuthService, validate *validatorv10.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	result, err := h.auth.Register(req)
	if err != nil {
		return err
	}
	return httpx.Created(c, result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	result, err := h.auth.Login(req)
	if err != nil {
		return err
	}
	return httpx.Success(c, result)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req domain.RefreshRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return err
	}

	access, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		return err
	}
	return httpx.Success(c, fiber.Map{"access_token": access})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.auth.Me(userID)
	if err != nil {
		return err
	}
	return httpx.Success(c, user)
}
