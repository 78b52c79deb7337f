package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store        *memory.Store
	bankAccounts *memory.BankAccountRepository
	transactions *memory.TransactionRepository
	users        *memory.UserRepository
	companies    *memory.CompanyRepository
	projects     *memory.ProjectRepository
	tasks        *memory.TaskRepository

	ledger   *services.LedgerService
	accounts *services.BankAccountService

	company domain.Company
	owner   domain.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:        store,
		bankAccounts: memory.NewBankAccountRepository(store),
		transactions: memory.NewTransactionRepository(store),
		users:        memory.NewUserRepository(store),
		companies:    memory.NewCompanyRepository(store),
		projects:     memory.NewProjectRepository(store),
		tasks:        memory.NewTaskRepository(store),
	}
	f.ledger = services.NewLedgerService(f.bankAccounts, f.transactions)
	f.accounts = services.NewBankAccountService(f.bankAccounts)

	company, err := f.companies.Create(context.Background(), domain.Company{Name: "Acme Corp"})
	require.NoError(t, err)
	f.company = company
	f.owner = f.addUser(t, "owner@acme.test", domain.RoleOwner).Principal()
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role domain.Role) domain.User {
	t.Helper()
	companyID := f.company.ID
	user, err := f.users.Create(context.Background(), domain.User{
		CompanyID:  &companyID,
		Name:       email,
		Email:      email,
		Role:       role,
		IsActive:   true,
		IsApproved: true,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) addAccount(t *testing.T, bankName, number, amount string) domain.BankAccount {
	t.Helper()
	resp, err := f.accounts.CreateBankAccount(context.Background(), f.owner, models.CreateBankAccountRequest{
		BankName:      bankName,
		IFSCCode:      "acme0000123",
		AccountNumber: number,
		AccountType:   "current",
		CurrentAmount: json.RawMessage(amount),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)

	account, err := f.bankAccounts.GetByID(context.Background(), f.company.ID, resp.Data.ID)
	require.NoError(t, err)
	return account
}

func (f *fixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	account, err := f.bankAccounts.GetByID(context.Background(), f.company.ID, accountID)
	require.NoError(t, err)
	return account.CurrentAmount
}

func expenseRequest(account, amount string) models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Type:     "expense",
		Amount:   json.RawMessage(amount),
		Account:  account,
		Category: "Travel",
		Date:     "2026-03-01",
	}
}
