package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountRejectsOutOfRangeInputQuickly(t *testing.T) {
	inputs := []string{
		"1e20000000",
		`"1e20000000"`,
		"1e-20000000",
		"1e21",
		strings.Repeat("9", 40),
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			start := time.Now()
			_, present, err := models.ParseAmount(json.RawMessage(raw))
			assert.Less(t, time.Since(start), 100*time.Millisecond)
			assert.True(t, present)
			assert.Error(t, err)
		})
	}
}

func TestParseAmountRoundsInRangeInput(t *testing.T) {
	amount, present, err := models.ParseAmount(json.RawMessage(`"1500.505"`))
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "1500.51", amount.StringFixed(2))

	amount, _, err = models.ParseAmount(json.RawMessage("1.5e3"))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", amount.StringFixed(2))

	_, present, err = models.ParseAmount(json.RawMessage("null"))
	require.NoError(t, err)
	assert.False(t, present)
}

func TestTransactionParseCarriesTypedValues(t *testing.T) {
	input, err := models.CreateTransactionRequest{
		Type:     "expense",
		Amount:   json.RawMessage(`"250.4"`),
		Account:  "Acme Bank",
		Category: "Travel",
		Date:     "2026-03-01",
	}.Parse()
	require.NoError(t, err)
	assert.Equal(t, "250.40", input.Amount.StringFixed(2))
	assert.Equal(t, "2026-03-01", input.Date.Format("2006-01-02"))
}

func TestTransactionParseEnforcesColumnBounds(t *testing.T) {
	valid := func() models.CreateTransactionRequest {
		return models.CreateTransactionRequest{
			Type:     "income",
			Amount:   json.RawMessage("10"),
			Account:  "Acme Bank",
			Category: "Tax",
			Date:     "2026-03-01",
		}
	}

	cases := map[string]struct {
		mutate func(*models.CreateTransactionRequest)
		field  string
	}{
		"amount above ceiling": {func(r *models.CreateTransactionRequest) { r.Amount = json.RawMessage("10000000000000000") }, "amount"},
		"huge exponent":        {func(r *models.CreateTransactionRequest) { r.Amount = json.RawMessage("1e20000000") }, "amount"},
		"category":             {func(r *models.CreateTransactionRequest) { r.Category = strings.Repeat("c", 101) }, "category"},
		"department":           {func(r *models.CreateTransactionRequest) { r.Department = strings.Repeat("d", 101) }, "department"},
		"account":              {func(r *models.CreateTransactionRequest) { r.Account = strings.Repeat("a", 201) }, "account"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)

			_, err := req.Parse()
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	req := valid()
	req.Amount = json.RawMessage(models.MaxAmount.String())
	req.Category = strings.Repeat("c", 100)
	_, err := req.Parse()
	assert.NoError(t, err)
}

func TestBankAccountParseEnforcesColumnBounds(t *testing.T) {
	req := models.CreateBankAccountRequest{
		BankName:      strings.Repeat("b", 201),
		IFSCCode:      "ACME0000123",
		AccountNumber: strings.Repeat("9", 41),
		AccountType:   "saving",
		CurrentAmount: json.RawMessage("99999999999999999"),
	}

	_, err := req.Parse()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "bankName")
	assert.Contains(t, verr.Fields, "accountNumber")
	assert.Contains(t, verr.Fields, "currentAmount")
}

func TestProjectParseBoundsAmounts(t *testing.T) {
	req := models.CreateProjectRequest{
		Name:         "Website",
		Description:  "Rebuild",
		StartDate:    "2026-01-01",
		EndDate:      "2026-06-30",
		ClientName:   "Globex",
		ProjectHead:  "u1",
		TotalRevenue: json.RawMessage("1e20000000"),
		Cost:         json.RawMessage("12.5"),
	}

	_, err := req.Parse()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "totalRevenue")
	assert.NotContains(t, verr.Fields, "cost")

	req.TotalRevenue = json.RawMessage("5000")
	input, err := req.Parse()
	require.NoError(t, err)
	assert.Equal(t, "5000.00", input.TotalRevenue.StringFixed(2))
	assert.Equal(t, "12.50", input.Cost.StringFixed(2))
	assert.True(t, input.EndDate.After(input.StartDate))
}

func TestUpdateTaskRequestBoundsName(t *testing.T) {
	long := strings.Repeat("n", 201)
	err := models.UpdateTaskRequest{Name: &long}.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	ok := strings.Repeat("n", 200)
	assert.NoError(t, models.UpdateTaskRequest{Name: &ok}.Validate())
}
