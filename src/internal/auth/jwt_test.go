package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() domain.User {
	companyID := "c1"
	return domain.User{
		ID:        "u1",
		CompanyID: &companyID,
		Name:      "Asha",
		Email:     "asha@acme.test",
		Role:      domain.RoleOwner,
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)

	token, expiresAt, err := issuer.Issue(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "c1", claims.CompanyID)
	assert.Equal(t, "owner", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("0123456789abcdef", time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("fedcba9876543210", time.Hour).Parse(token)
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("0123456789abcdef", time.Hour).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
