package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientFundsErrorMessage(t *testing.T) {
	err := fmt.Errorf("post transaction: %w", &domain.InsufficientFundsError{
		Requested: decimal.RequireFromString("1200"),
		Available: decimal.RequireFromString("1000"),
		BankName:  "Acme Bank",
	})

	require.True(t, errors.Is(err, domain.ErrInsufficientFunds))

	var fundsErr *domain.InsufficientFundsError
	require.True(t, errors.As(err, &fundsErr))
	assert.Equal(t,
		"Transaction failed: Demanded amount (₹1,200.00) is bigger than current amount (₹1,000.00) in Acme Bank",
		fundsErr.Error(),
	)
}

func TestValidationErrorCollectsFields(t *testing.T) {
	v := domain.NewValidationError()
	require.NoError(t, v.OrNil())

	v.Add("type", "type must be income or expense")
	v.Add("amount", "amount must be greater than zero")
	v.Add("amount", "ignored second message")

	err := v.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{"amount must be greater than zero", "type must be income or expense"}, v.Messages())
}

func TestPrincipalRequireCompany(t *testing.T) {
	assert.ErrorIs(t, domain.Principal{}.RequireCompany(), domain.ErrUnauthenticated)
	assert.ErrorIs(t, domain.Principal{ID: "u1"}.RequireCompany(), domain.ErrNoCompany)
	assert.NoError(t, domain.Principal{ID: "u1", CompanyID: "c1"}.RequireCompany())
}
