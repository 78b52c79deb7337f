package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
)

const maxIdempotencyKeyLength = 128

type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required|in:income,expense"`
	Amount      json.RawMessage `json:"amount"`
	Account     string          `json:"account" validate:"max_len:200"`
	AccountID   string          `json:"accountId"`
	Category    string          `json:"category" validate:"required|max_len:100"`
	Date        string          `json:"date" validate:"required"`
	Department  string          `json:"department" validate:"max_len:100"`
	Description string          `json:"description"`

	IdempotencyKey string `json:"-"`
}

func (r CreateTransactionRequest) Messages() map[string]string {
	return validate.MS{
		"required": "{field} is required",
		"Type.in":  "type must be income or expense",
	}
}

func (r CreateTransactionRequest) Translates() map[string]string {
	return validate.MS{
		"Type":       "type",
		"Account":    "account",
		"Category":   "category",
		"Department": "department",
		"Date":       "date",
	}
}

func (r *CreateTransactionRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Account = strings.TrimSpace(r.Account)
	r.AccountID = strings.TrimSpace(r.AccountID)
	r.Category = strings.TrimSpace(r.Category)
	r.Date = strings.TrimSpace(r.Date)
	r.Department = strings.TrimSpace(r.Department)
	r.Description = strings.TrimSpace(r.Description)
	r.IdempotencyKey = strings.TrimSpace(r.IdempotencyKey)
}

// TransactionInput carries the typed values of a validated request.
type TransactionInput struct {
	Amount decimal.Decimal
	Date   time.Time
}

func (r CreateTransactionRequest) Validate() error {
	_, err := r.Parse()
	return err
}

// Parse validates the request and returns its amount and date, so callers
// never parse the raw values a second time.
func (r CreateTransactionRequest) Parse() (TransactionInput, error) {
	v := domain.NewValidationError()
	checkStruct(&r, v)

	var input TransactionInput
	if amount, ok := amountField(v, "amount", r.Amount, true); ok {
		if !amount.IsPositive() {
			v.Add("amount", "amount must be greater than zero")
		}
		input.Amount = amount
	}

	if r.Date != "" {
		date, err := ParseDate(r.Date)
		if err != nil {
			v.Add("date", "date must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
		input.Date = date
	}

	if r.Account == "" && r.AccountID == "" {
		v.Add("account", "account is required")
	}

	if len(r.IdempotencyKey) > maxIdempotencyKeyLength {
		v.Add("idempotencyKey", "Idempotency-Key must be at most 128 characters")
	}

	if err := v.OrNil(); err != nil {
		return TransactionInput{}, err
	}
	return input, nil
}

type TransactionResponse struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Amount         json.Number `json:"amount"`
	Account        string      `json:"account"`
	AccountID      string      `json:"accountId"`
	Category       string      `json:"category"`
	Color          string      `json:"color"`
	Department     string      `json:"department"`
	Description    string      `json:"description,omitempty"`
	Date           string      `json:"date"`
	IdempotencyKey *string     `json:"idempotencyKey,omitempty"`
	CreatedAt      string      `json:"createdAt"`
}

func NewTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             txn.ID,
		Type:           string(txn.Type),
		Amount:         Money(txn.Amount),
		Account:        txn.Account,
		AccountID:      txn.BankAccountID,
		Category:       txn.Category,
		Color:          txn.Color,
		Department:     txn.Department,
		Description:    txn.Description,
		Date:           FormatTime(txn.Date),
		IdempotencyKey: txn.IdempotencyKey,
		CreatedAt:      FormatTime(txn.CreatedAt),
	}
}

type RecordTransactionResponse struct {
	TransactionResponse
	Balance  json.Number `json:"balance"`
	Replayed bool        `json:"replayed,omitempty"`
}
