package memory

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
)

type BankAccountRepository struct {
	store *Store
}

func NewBankAccountRepository(store *Store) *BankAccountRepository {
	return &BankAccountRepository{store: store}
}

func (r *BankAccountRepository) Create(_ context.Context, account domain.BankAccount) (domain.BankAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.bankAccounts {
		if existing.CompanyID == account.CompanyID && existing.AccountNumber == account.AccountNumber {
			return domain.BankAccount{}, domain.ErrDuplicateAccount
		}
	}

	now := r.store.stamp()
	account.ID = newID()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.store.bankAccounts[account.ID] = account
	return account, nil
}

func (r *BankAccountRepository) GetByID(_ context.Context, companyID string, id string) (domain.BankAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.bankAccounts[id]
	if !ok || account.CompanyID != companyID {
		return domain.BankAccount{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *BankAccountRepository) FindByBankName(_ context.Context, companyID string, bankName string) ([]domain.BankAccount, error) {
	return r.filter(func(a domain.BankAccount) bool {
		return a.CompanyID == companyID && a.BankName == bankName
	}, false), nil
}

func (r *BankAccountRepository) ExistsByAccountNumber(_ context.Context, companyID string, accountNumber string) (bool, error) {
	return len(r.filter(func(a domain.BankAccount) bool {
		return a.CompanyID == companyID && a.AccountNumber == accountNumber
	}, false)) > 0, nil
}

func (r *BankAccountRepository) ListByCompany(_ context.Context, companyID string) ([]domain.BankAccount, error) {
	return r.filter(func(a domain.BankAccount) bool {
		return a.CompanyID == companyID
	}, true), nil
}

func (r *BankAccountRepository) ListAll(_ context.Context) ([]domain.BankAccount, error) {
	return r.filter(func(domain.BankAccount) bool { return true }, false), nil
}

func (r *BankAccountRepository) TotalBalance(_ context.Context, companyID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.filter(func(a domain.BankAccount) bool { return a.CompanyID == companyID }, false) {
		total = total.Add(a.CurrentAmount)
	}
	return total, nil
}

func (r *BankAccountRepository) filter(keep func(domain.BankAccount) bool, newestFirst bool) []domain.BankAccount {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.BankAccount, 0)
	for _, a := range r.store.bankAccounts {
		if keep(a) {
			out = append(out, a)
		}
	}
	sortByCreated(out, func(a domain.BankAccount) (time.Time, string) { return a.CreatedAt, a.ID }, newestFirst)
	return out
}
