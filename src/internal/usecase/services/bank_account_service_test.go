package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankAccountServiceCreateValidationError(t *testing.T) {
	svc := services.NewBankAccountService(nil)
	principal := domain.Principal{ID: "u1", CompanyID: "c1"}

	resp, err := svc.CreateBankAccount(context.Background(), principal, models.CreateBankAccountRequest{
		BankName:      "Acme Bank",
		AccountType:   "checking",
		CurrentAmount: json.RawMessage("-1"),
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected failure response")
	}
	if len(resp.Errors) < 4 {
		t.Fatalf("expected ifscCode, accountNumber, accountType and currentAmount errors, got %v", resp.Errors)
	}
}

func TestBankAccountServiceCreateRejectsOversizedFields(t *testing.T) {
	f := newFixture(t)
	valid := func() models.CreateBankAccountRequest {
		return models.CreateBankAccountRequest{
			BankName:      "Acme Bank",
			IFSCCode:      "ACME0000123",
			AccountNumber: "50100012345",
			AccountType:   "saving",
			CurrentAmount: json.RawMessage("100"),
		}
	}

	cases := map[string]struct {
		mutate func(*models.CreateBankAccountRequest)
		field  string
	}{
		"account number": {func(r *models.CreateBankAccountRequest) { r.AccountNumber = strings.Repeat("9", 41) }, "accountNumber"},
		"bank name":      {func(r *models.CreateBankAccountRequest) { r.BankName = strings.Repeat("b", 201) }, "bankName"},
		"opening amount": {func(r *models.CreateBankAccountRequest) { r.CurrentAmount = json.RawMessage("10000000000000000") }, "currentAmount"},
		"huge exponent":  {func(r *models.CreateBankAccountRequest) { r.CurrentAmount = json.RawMessage(`"1e20000000"`) }, "currentAmount"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)

			_, err := f.accounts.CreateBankAccount(context.Background(), f.owner, req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	accounts, err := f.bankAccounts.ListByCompany(context.Background(), f.company.ID)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestBankAccountServiceCreateNormalizesAndStoresOpeningAmount(t *testing.T) {
	f := newFixture(t)

	resp, err := f.accounts.CreateBankAccount(context.Background(), f.owner, models.CreateBankAccountRequest{
		BankName:      "  Acme Bank ",
		IFSCCode:      "acme0000123",
		AccountNumber: "50100012345",
		AccountType:   "Saving",
		CurrentAmount: json.RawMessage(`"1500.5"`),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, "Acme Bank", resp.Data.BankName)
	assert.Equal(t, "ACME0000123", resp.Data.IFSCCode)
	assert.Equal(t, "saving", resp.Data.AccountType)
	assert.Equal(t, f.company.ID, resp.Data.CompanyID)
	assert.Equal(t, "1500.50", resp.Data.CurrentAmount.String())
	assert.Equal(t, "1500.50", resp.Data.OpeningAmount.String())
}

func TestBankAccountServiceRejectsDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "Acme Bank", "50100012345", "10")

	resp, err := f.accounts.CreateBankAccount(context.Background(), f.owner, models.CreateBankAccountRequest{
		BankName:      "Other Bank",
		IFSCCode:      "othr0000001",
		AccountNumber: "50100012345",
		AccountType:   "current",
		CurrentAmount: json.RawMessage("0"),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assert.Equal(t, domain.ErrDuplicateAccount.Error(), resp.Message)
}

func TestBankAccountServiceListIsTenantScoped(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "Acme Bank", "1111", "10")
	f.addAccount(t, "Other Bank", "2222", "20")

	resp, err := f.accounts.ListBankAccounts(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Len(t, *resp.Data, 2)

	_, err = f.accounts.ListBankAccounts(context.Background(), domain.Principal{ID: "u1"})
	require.ErrorIs(t, err, domain.ErrNoCompany)
}

func TestCategoryServiceReturnsCatalog(t *testing.T) {
	resp, err := services.NewCategoryService().GetCategories(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, *resp.Data)

	colors := map[string]string{}
	for _, category := range *resp.Data {
		colors[category.Name] = category.Color
	}
	assert.Equal(t, "#14B8A6", colors["Travel"])
}
