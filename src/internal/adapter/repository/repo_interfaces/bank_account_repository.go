package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
)

type BankAccountRepository interface {
	Create(ctx context.Context, account domain.BankAccount) (domain.BankAccount, error)
	GetByID(ctx context.Context, companyID string, id string) (domain.BankAccount, error)
	FindByBankName(ctx context.Context, companyID string, bankName string) ([]domain.BankAccount, error)
	ExistsByAccountNumber(ctx context.Context, companyID string, accountNumber string) (bool, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error)
	TotalBalance(ctx context.Context, companyID string) (decimal.Decimal, error)
	ListAll(ctx context.Context) ([]domain.BankAccount, error)
}
