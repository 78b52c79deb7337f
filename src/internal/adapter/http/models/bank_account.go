package models

import (
	"encoding/json"
	"strings"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
)

type CreateBankAccountRequest struct {
	BankName      string          `json:"bankName" validate:"required|max_len:200"`
	IFSCCode      string          `json:"ifscCode" validate:"required|max_len:20"`
	AccountNumber string          `json:"accountNumber" validate:"required|max_len:40"`
	AccountType   string          `json:"accountType" validate:"required|in:saving,current"`
	CurrentAmount json.RawMessage `json:"currentAmount"`
}

func (r CreateBankAccountRequest) Messages() map[string]string {
	return validate.MS{
		"required":       "{field} is required",
		"AccountType.in": "accountType must be saving or current",
	}
}

func (r CreateBankAccountRequest) Translates() map[string]string {
	return validate.MS{
		"BankName":      "bankName",
		"IFSCCode":      "ifscCode",
		"AccountNumber": "accountNumber",
		"AccountType":   "accountType",
	}
}

func (r *CreateBankAccountRequest) Normalize() {
	r.BankName = strings.TrimSpace(r.BankName)
	r.IFSCCode = strings.ToUpper(strings.TrimSpace(r.IFSCCode))
	r.AccountNumber = strings.TrimSpace(r.AccountNumber)
	r.AccountType = strings.ToLower(strings.TrimSpace(r.AccountType))
}

func (r CreateBankAccountRequest) Validate() error {
	_, err := r.Parse()
	return err
}

// Parse validates the request and returns the opening amount.
func (r CreateBankAccountRequest) Parse() (decimal.Decimal, error) {
	v := domain.NewValidationError()
	checkStruct(&r, v)

	amount, ok := amountField(v, "currentAmount", r.CurrentAmount, true)
	if ok && amount.IsNegative() {
		v.Add("currentAmount", "currentAmount cannot be negative")
	}

	if err := v.OrNil(); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

type BankAccountResponse struct {
	ID            string      `json:"id"`
	CompanyID     string      `json:"companyId"`
	BankName      string      `json:"bankName"`
	IFSCCode      string      `json:"ifscCode"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   string      `json:"accountType"`
	OpeningAmount json.Number `json:"openingAmount"`
	CurrentAmount json.Number `json:"currentAmount"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
}

func NewBankAccountResponse(account domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            account.ID,
		CompanyID:     account.CompanyID,
		BankName:      account.BankName,
		IFSCCode:      account.IFSCCode,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		OpeningAmount: Money(account.OpeningAmount),
		CurrentAmount: Money(account.CurrentAmount),
		CreatedAt:     FormatTime(account.CreatedAt),
		UpdatedAt:     FormatTime(account.UpdatedAt),
	}
}

type CategoryResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
