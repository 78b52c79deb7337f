package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/metrics"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardServiceSummary(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "Acme Bank", "1111", "1000")
	f.addAccount(t, "Other Bank", "2222", "500")

	thisMonth, lastMonth := domain.MonthBounds(time.Now())
	income := func(amount string, day time.Time) {
		_, err := f.ledger.RecordTransaction(context.Background(), f.owner, models.CreateTransactionRequest{
			Type:     "income",
			Amount:   json.RawMessage(amount),
			Account:  "Acme Bank",
			Category: "Revenue",
			Date:     day.AddDate(0, 0, 14).Format("2006-01-02"),
		})
		require.NoError(t, err)
	}
	income("300", thisMonth)
	income("200", lastMonth)

	projects := services.NewProjectService(f.projects, f.users, f.companies)
	_, err := projects.CreateProject(context.Background(), f.owner, projectRequest(f.owner.ID))
	require.NoError(t, err)

	dashboard := services.NewDashboardService(f.bankAccounts, f.transactions, f.projects)
	resp, err := dashboard.GetSummary(context.Background(), f.owner)
	require.NoError(t, err)

	assert.Equal(t, "2000.00", resp.Data.TotalBankBalance.String())
	assert.Equal(t, "500.00", resp.Data.TotalRevenue.String())
	assert.Equal(t, "300.00", resp.Data.ThisMonthRevenue.String())
	assert.Equal(t, "200.00", resp.Data.LastMonthRevenue.String())
	assert.Equal(t, "50.0", resp.Data.GrowthRate.Rate.String())
	assert.Equal(t, "up", resp.Data.GrowthRate.Trend)
	assert.Equal(t, "+50.0%", resp.Data.GrowthRate.Change)
	assert.Equal(t, 1, resp.Data.ActiveProjects)

	_, err = dashboard.GetSummary(context.Background(), domain.Principal{ID: "x"})
	require.ErrorIs(t, err, domain.ErrNoCompany)
}

func TestReconciliationServiceReportsDrift(t *testing.T) {
	f := newFixture(t)
	clean := f.addAccount(t, "Acme Bank", "1111", "1000")
	_, err := f.ledger.RecordTransaction(context.Background(), f.owner, expenseRequest("Acme Bank", "250"))
	require.NoError(t, err)

	drifted, err := f.bankAccounts.Create(context.Background(), domain.BankAccount{
		CompanyID:     f.company.ID,
		BankName:      "Drift Bank",
		IFSCCode:      "DRFT0000001",
		AccountNumber: "3333",
		AccountType:   domain.AccountTypeSaving,
		OpeningAmount: decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	drifts, err := services.NewReconciliationService(f.bankAccounts, f.transactions).Reconcile(context.Background())
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, drifted.ID, drifts[0].BankAccountID)
	assert.NotEqual(t, clean.ID, drifts[0].BankAccountID)
	assert.True(t, drifts[0].Expected.Equal(decimal.NewFromInt(100)))
	assert.True(t, drifts[0].Actual.Equal(decimal.NewFromInt(150)))

	assert.Equal(t, 50.0, testutil.ToFloat64(metrics.ReconciliationDriftTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReconciliationDriftedAccounts))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ReconciliationDriftTotal))
}

func TestReconciliationServiceDriftMetricsStayUnlabelled(t *testing.T) {
	f := newFixture(t)
	for i, number := range []string{"1111", "2222", "3333"} {
		_, err := f.bankAccounts.Create(context.Background(), domain.BankAccount{
			CompanyID:     f.company.ID,
			BankName:      "Drift Bank " + number,
			IFSCCode:      "DRFT0000001",
			AccountNumber: number,
			AccountType:   domain.AccountTypeSaving,
			OpeningAmount: decimal.NewFromInt(100),
			CurrentAmount: decimal.NewFromInt(int64(110 + i*10)),
		})
		require.NoError(t, err)
	}

	drifts, err := services.NewReconciliationService(f.bankAccounts, f.transactions).Reconcile(context.Background())
	require.NoError(t, err)
	require.Len(t, drifts, 3)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ReconciliationDriftTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ReconciliationDriftedAccounts))
	assert.Equal(t, 60.0, testutil.ToFloat64(metrics.ReconciliationDriftTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.ReconciliationDriftedAccounts))
}
