package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

const DefaultDepartment = "All"

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is immutable once persisted.
type Transaction struct {
	ID             string
	CompanyID      string
	Type           TransactionType
	Amount         decimal.Decimal
	BankAccountID  string
	Account        string
	Category       string
	Color          string
	Department     string
	Description    string
	Date           time.Time
	IdempotencyKey *string
	CreatedAt      time.Time
}

// BalanceDelta is the signed change the transaction applies to its account.
func (t Transaction) BalanceDelta() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerPosting is the outcome of recording a transaction against an account.
type LedgerPosting struct {
	Transaction Transaction
	Balance     decimal.Decimal
	Replayed    bool
}

// AccountDrift reports a bank account whose stored balance disagrees with
// its opening amount plus the net of its transactions.
type AccountDrift struct {
	BankAccountID string
	CompanyID     string
	BankName      string
	Expected      decimal.Decimal
	Actual        decimal.Decimal
}

func (d AccountDrift) Difference() decimal.Decimal {
	return d.Actual.Sub(d.Expected)
}
