package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, store *Store, companyID string, balance string) domain.BankAccount {
	t.Helper()
	amount := decimal.RequireFromString(balance)
	account, err := NewBankAccountRepository(store).Create(context.Background(), domain.BankAccount{
		CompanyID:     companyID,
		BankName:      "Acme Bank",
		IFSCCode:      "ACME0000001",
		AccountNumber: "50100012345",
		AccountType:   domain.AccountTypeCurrent,
		OpeningAmount: amount,
		CurrentAmount: amount,
	})
	require.NoError(t, err)
	return account
}

func expense(account domain.BankAccount, amount string) domain.Transaction {
	return domain.Transaction{
		CompanyID:     account.CompanyID,
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.RequireFromString(amount),
		BankAccountID: account.ID,
		Category:      "Travel",
		Color:         "#14B8A6",
		Department:    domain.DefaultDepartment,
		Date:          time.Now(),
	}
}

func TestPostAppliesDeltaAndPublishes(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "1000")
	repo := NewTransactionRepository(store)

	posting, err := repo.Post(context.Background(), expense(account, "400"))
	require.NoError(t, err)
	assert.True(t, posting.Balance.Equal(decimal.RequireFromString("600")))
	assert.Equal(t, "Acme Bank", posting.Transaction.Account)
	assert.NotEmpty(t, posting.Transaction.ID)

	stored, err := NewBankAccountRepository(store).GetByID(context.Background(), "c1", account.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentAmount.Equal(decimal.RequireFromString("600")))

	list, err := repo.ListByCompany(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestPostInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "1000")
	repo := NewTransactionRepository(store)

	_, err := repo.Post(context.Background(), expense(account, "1200"))
	var fundsErr *domain.InsufficientFundsError
	require.True(t, errors.As(err, &fundsErr))
	assert.True(t, fundsErr.Available.Equal(decimal.RequireFromString("1000")))

	stored, _ := NewBankAccountRepository(store).GetByID(context.Background(), "c1", account.ID)
	assert.True(t, stored.CurrentAmount.Equal(decimal.RequireFromString("1000")))
	list, _ := repo.ListByCompany(context.Background(), "c1")
	assert.Empty(t, list)
}

func TestPostFaultBetweenInsertAndBalanceUpdateIsAtomic(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "1000")
	repo := NewTransactionRepository(store)

	store.BeforeBalanceUpdate = func(domain.Transaction) error {
		return errors.New("storage went away")
	}

	_, err := repo.Post(context.Background(), expense(account, "100"))
	require.ErrorIs(t, err, domain.ErrCommitFailed)

	stored, _ := NewBankAccountRepository(store).GetByID(context.Background(), "c1", account.ID)
	assert.True(t, stored.CurrentAmount.Equal(decimal.RequireFromString("1000")))
	list, _ := repo.ListByCompany(context.Background(), "c1")
	assert.Empty(t, list)
}

func TestPostRejectsOtherTenantsAccount(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "1000")
	repo := NewTransactionRepository(store)

	txn := expense(account, "10")
	txn.CompanyID = "c2"
	_, err := repo.Post(context.Background(), txn)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestPostConcurrentExpensesNeverOverdraw(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "1000")
	repo := NewTransactionRepository(store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Post(context.Background(), expense(account, "100")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	stored, _ := NewBankAccountRepository(store).GetByID(context.Background(), "c1", account.ID)
	assert.True(t, stored.CurrentAmount.IsZero())
}

func TestPostIdempotentReplay(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "1000")
	repo := NewTransactionRepository(store)

	key := "invoice-7"
	txn := expense(account, "250")
	txn.IdempotencyKey = &key

	first, err := repo.Post(context.Background(), txn)
	require.NoError(t, err)
	second, err := repo.Post(context.Background(), txn)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Transaction.ID, second.Transaction.ID)
	assert.True(t, second.Balance.Equal(decimal.RequireFromString("750")))

	list, _ := repo.ListByCompany(context.Background(), "c1")
	assert.Len(t, list, 1)
}

func TestNetByAccountAndIncomeTotals(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "c1", "0")
	repo := NewTransactionRepository(store)

	thisMonth, lastMonth := domain.MonthBounds(time.Now())

	income := expense(account, "300")
	income.Type = domain.TransactionTypeIncome
	income.Date = thisMonth.Add(time.Hour)
	_, err := repo.Post(context.Background(), income)
	require.NoError(t, err)

	income.Amount = decimal.RequireFromString("200")
	income.Date = lastMonth.Add(time.Hour)
	_, err = repo.Post(context.Background(), income)
	require.NoError(t, err)

	_, err = repo.Post(context.Background(), expense(account, "50"))
	require.NoError(t, err)

	net, err := repo.NetByAccount(context.Background())
	require.NoError(t, err)
	assert.True(t, net[account.ID].Equal(decimal.RequireFromString("450")))

	totals, err := repo.IncomeTotals(context.Background(), "c1", thisMonth, lastMonth)
	require.NoError(t, err)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("500")))
	assert.True(t, totals.ThisMonth.Equal(decimal.RequireFromString("300")))
	assert.True(t, totals.LastMonth.Equal(decimal.RequireFromString("200")))
}

func TestBankAccountDuplicateNumberPerCompany(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "c1", "10")

	_, err := NewBankAccountRepository(store).Create(context.Background(), domain.BankAccount{
		CompanyID:     "c1",
		BankName:      "Other Bank",
		AccountNumber: "50100012345",
		AccountType:   domain.AccountTypeSaving,
	})
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)

	seedAccount(t, store, "c2", "10")
	accounts, _ := NewBankAccountRepository(store).ListAll(context.Background())
	assert.Len(t, accounts, 2)
}
