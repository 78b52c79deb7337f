package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSaving  AccountType = "saving"
	AccountTypeCurrent AccountType = "current"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeSaving || t == AccountTypeCurrent
}

type BankAccount struct {
	ID            string
	CompanyID     string
	BankName      string
	IFSCCode      string
	AccountNumber string
	AccountType   AccountType
	OpeningAmount decimal.Decimal
	CurrentAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
