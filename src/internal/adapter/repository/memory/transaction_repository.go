package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Post stages the transaction, checks and moves the balance, and only then
// publishes both. Any failure before publication leaves the store untouched.
func (r *TransactionRepository) Post(ctx context.Context, txn domain.Transaction) (domain.LedgerPosting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.LedgerPosting{}, fmt.Errorf("post transaction: %w: %w", domain.ErrCommitFailed, err)
	}

	if txn.IdempotencyKey != nil {
		for _, existing := range r.store.transactions {
			if existing.CompanyID == txn.CompanyID && existing.IdempotencyKey != nil && *existing.IdempotencyKey == *txn.IdempotencyKey {
				account := r.store.bankAccounts[existing.BankAccountID]
				existing.Account = account.BankName
				return domain.LedgerPosting{Transaction: existing, Balance: account.CurrentAmount, Replayed: true}, nil
			}
		}
	}

	account, ok := r.store.bankAccounts[txn.BankAccountID]
	if !ok || account.CompanyID != txn.CompanyID {
		return domain.LedgerPosting{}, domain.ErrAccountNotFound
	}

	now := r.store.stamp()
	staged := txn
	staged.ID = newID()
	staged.CreatedAt = now
	staged.Account = account.BankName

	if hook := r.store.BeforeBalanceUpdate; hook != nil {
		if err := hook(staged); err != nil {
			return domain.LedgerPosting{}, fmt.Errorf("post transaction: %w: %w", domain.ErrCommitFailed, err)
		}
	}

	balance := account.CurrentAmount.Add(staged.BalanceDelta())
	if balance.IsNegative() {
		return domain.LedgerPosting{}, &domain.InsufficientFundsError{
			Requested: staged.Amount,
			Available: account.CurrentAmount,
			BankName:  account.BankName,
		}
	}

	account.CurrentAmount = balance
	account.UpdatedAt = now
	r.store.bankAccounts[account.ID] = account
	r.store.transactions = append(r.store.transactions, staged)

	return domain.LedgerPosting{Transaction: staged, Balance: balance}, nil
}

func (r *TransactionRepository) ListByCompany(_ context.Context, companyID string) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.Transaction, 0)
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		txn := r.store.transactions[i]
		if txn.CompanyID != companyID {
			continue
		}
		txn.Account = r.store.bankAccounts[txn.BankAccountID].BankName
		out = append(out, txn)
	}
	return out, nil
}

func (r *TransactionRepository) IncomeTotals(_ context.Context, companyID string, thisMonth time.Time, lastMonth time.Time) (domain.RevenueTotals, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	nextMonth := thisMonth.AddDate(0, 1, 0)
	totals := domain.RevenueTotals{Total: decimal.Zero, ThisMonth: decimal.Zero, LastMonth: decimal.Zero}
	for _, txn := range r.store.transactions {
		if txn.CompanyID != companyID || txn.Type != domain.TransactionTypeIncome {
			continue
		}
		totals.Total = totals.Total.Add(txn.Amount)
		switch {
		case !txn.Date.Before(thisMonth) && txn.Date.Before(nextMonth):
			totals.ThisMonth = totals.ThisMonth.Add(txn.Amount)
		case !txn.Date.Before(lastMonth) && txn.Date.Before(thisMonth):
			totals.LastMonth = totals.LastMonth.Add(txn.Amount)
		}
	}
	return totals, nil
}

func (r *TransactionRepository) NetByAccount(_ context.Context) (map[string]decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	net := make(map[string]decimal.Decimal)
	for _, txn := range r.store.transactions {
		net[txn.BankAccountID] = net[txn.BankAccountID].Add(txn.BalanceDelta())
	}
	return net, nil
}
