package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	userID := uuid.New()

	signed, err := Issue("test-secret", time.Minute, userID, domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := Parse("test-secret", signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := Issue("secret-a", time.Minute, uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	_, err = Parse("secret-b", signed)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signed, err := Issue("test-secret", -time.Minute, uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	_, err = Parse("test-secret", signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("test-secret", "not-a-token")
	assert.Error(t, err)
}
