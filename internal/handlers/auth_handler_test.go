package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/httpx"
	"github.com/bakehouse-commerce/storefront-api/internal/middleware"
	"github.com/bakehouse-commerce/storefront-api/internal/service"
	"github.com/bakehouse-commerce/storefront-api/internal/validation"
)

type memoryUserStore struct {
	users map[uuid.UUID]*domain.User
}

func (m *memoryUserStore) Create(user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserStore) GetByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStore) GetByID(id uuid.UUID) (*domain.User, error) {
	return m.users[id], nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := &memoryUserStore{users: make(map[uuid.UUID]*domain.User)}
	auth := service.NewAuthService(store, "access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	handler := NewAuthHandler(auth, validation.New())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var domainErr *domain.Error
			if errors.As(err, &domainErr) {
				return httpx.Fail(c, domainErr.Status, domainErr.Message)
			}
			return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
		},
	})
	app.Post("/auth/register", handler.Register)
	app.Post("/auth/login", handler.Login)
	app.Get("/auth/me", middleware.RequireAuth("access-secret"), handler.Me)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, bearer string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/auth/register",
		`{"name":"Maria Silva","email":"maria@example.com","password":"s3cret-pass"}`, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, fiber.MethodPost, "/auth/login",
		`{"email":"maria@example.com","password":"s3cret-pass"}`, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	access, ok := data["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, access)

	resp, body = doJSON(t, app, fiber.MethodGet, "/auth/me", "", access)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	user, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "maria@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
}

func TestRegisterValidationFailure(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/auth/register",
		`{"name":"M","email":"not-an-email","password":"123"}`, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	message, _ := body["message"].(string)
	assert.Contains(t, message, "validation failed")
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/auth/register",
		`{"name":"Maria Silva","email":"maria@example.com","password":"s3cret-pass"}`, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPost, "/auth/login",
		`{"email":"maria@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["message"])
}

func TestMeRequiresToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/auth/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/auth/me", "", "garbage-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
