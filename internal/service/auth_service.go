package service

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/token"
)

type UserStore interface {
	Create(user *domain.User) error
	GetByEmail(email string) (*domain.User, error)
	GetByID(id uuid.UUID) (*domain.User, error)
}

type AuthService struct {
	users UserStore

	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(users UserStore, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates a CUSTOMER account. Role is fixed at creation; there is
// no promotion path through the API.
func (s *AuthService) Register(req domain.RegisterRequest) (*AuthResult, error) {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.BadRequest("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req domain.LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Unauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.Unauthorized("invalid credentials")
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := token.Parse(s.refreshSecret, refreshToken)
	if err != nil {
		return "", domain.Unauthorized("invalid refresh token")
	}
	access, err := token.Issue(s.accessSecret, s.accessTTL, claims.UserID, claims.Role)
	if err != nil {
		return "", err
	}
	return access, nil
}

// Me loads the authenticated user's profile.
func (s *AuthService) Me(id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	access, err := token.Issue(s.accessSecret, s.accessTTL, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := token.Issue(s.refreshSecret, s.refreshTTL, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
