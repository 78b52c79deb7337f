package services

import (
	"context"
	"fmt"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/metrics"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.ReconciliationService = (*ReconciliationService)(nil)

// ReconciliationService checks that every stored balance equals the opening
// amount plus the net of the account's transactions. It never writes.
type ReconciliationService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewReconciliationService(
	bankAccountRepo repo_interfaces.BankAccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *ReconciliationService {
	return &ReconciliationService{
		bankAccountRepo: bankAccountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *ReconciliationService) Reconcile(ctx context.Context) (drifts []domain.AccountDrift, err error) {
	ctx, span := tracer.Start(ctx, "ledger.Reconcile")
	defer func() { endSpan(span, err) }()

	logger.Info("reconciliation service run started", nil)

	accounts, err := s.bankAccountRepo.ListAll(ctx)
	if err != nil {
		metrics.ReconciliationRuns.WithLabelValues("error").Inc()
		logger.Error("reconciliation service list accounts failed", err, nil)
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}

	net, err := s.transactionRepo.NetByAccount(ctx)
	if err != nil {
		metrics.ReconciliationRuns.WithLabelValues("error").Inc()
		logger.Error("reconciliation service net by account failed", err, nil)
		return nil, fmt.Errorf("net transactions by account: %w", err)
	}

	drifts = make([]domain.AccountDrift, 0)
	total := decimal.Zero
	for _, account := range accounts {
		movement, ok := net[account.ID]
		if !ok {
			movement = decimal.Zero
		}

		drift := domain.AccountDrift{
			BankAccountID: account.ID,
			CompanyID:     account.CompanyID,
			BankName:      account.BankName,
			Expected:      account.OpeningAmount.Add(movement),
			Actual:        account.CurrentAmount,
		}
		if drift.Difference().IsZero() {
			continue
		}
		total = total.Add(drift.Difference().Abs())
		logger.Warn("reconciliation service balance drift", logger.Fields{
			"bankAccountId": drift.BankAccountID,
			"companyId":     drift.CompanyID,
			"expected":      drift.Expected.StringFixed(2),
			"actual":        drift.Actual.StringFixed(2),
		})
		drifts = append(drifts, drift)
	}

	totalDrift, _ := total.Float64()
	metrics.ReconciliationDriftTotal.Set(totalDrift)
	metrics.ReconciliationDriftedAccounts.Set(float64(len(drifts)))

	result := "clean"
	if len(drifts) > 0 {
		result = "drift"
	}
	metrics.ReconciliationRuns.WithLabelValues(result).Inc()
	logger.Info("reconciliation service run finished", logger.Fields{
		"accounts": len(accounts),
		"drifted":  len(drifts),
	})
	return drifts, nil
}
