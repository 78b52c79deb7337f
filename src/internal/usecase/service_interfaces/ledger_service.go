package service_interfaces

import (
	"context"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type LedgerService interface {
	RecordTransaction(ctx context.Context, principal domain.Principal, req models.CreateTransactionRequest) (commons.Response[models.RecordTransactionResponse], error)
	ListTransactions(ctx context.Context, principal domain.Principal) (commons.Response[[]models.TransactionResponse], error)
}

type BankAccountService interface {
	CreateBankAccount(ctx context.Context, principal domain.Principal, req models.CreateBankAccountRequest) (commons.Response[models.BankAccountResponse], error)
	ListBankAccounts(ctx context.Context, principal domain.Principal) (commons.Response[[]models.BankAccountResponse], error)
}

type CategoryService interface {
	GetCategories(ctx context.Context) (commons.Response[[]models.CategoryResponse], error)
}

type ReconciliationService interface {
	Reconcile(ctx context.Context) ([]domain.AccountDrift, error)
}
