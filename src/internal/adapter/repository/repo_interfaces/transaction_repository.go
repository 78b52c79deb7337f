package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository owns the ledger. Post must persist the transaction and
// apply its balance delta to the bank account as one atomic unit: either both
// are visible afterwards or neither is.
type TransactionRepository interface {
	Post(ctx context.Context, txn domain.Transaction) (domain.LedgerPosting, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Transaction, error)
	IncomeTotals(ctx context.Context, companyID string, thisMonth time.Time, lastMonth time.Time) (domain.RevenueTotals, error)
	NetByAccount(ctx context.Context) (map[string]decimal.Decimal, error)
}
