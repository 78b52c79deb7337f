package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrRecordNotFound = errors.New("Record not found")

var (
	ErrUnauthenticated    = errors.New("Authentication required")
	ErrNoCompany          = errors.New("No company associated with this user")
	ErrInvalidInput       = errors.New("validation failed")
	ErrAccountNotFound    = errors.New("Bank account not found")
	ErrDuplicateAccount   = errors.New("Bank account with this account number already exists")
	ErrInsufficientFunds  = errors.New("Insufficient funds")
	ErrCommitFailed       = errors.New("Failed to save transaction, please retry")
	ErrForbidden          = errors.New("Forbidden")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrPendingApproval    = errors.New("Your account is pending approval by an administrator")
	ErrAccountRejected    = errors.New("Your account has been rejected by an administrator")
	ErrDuplicateEmail     = errors.New("User with this email already exists")
	ErrManagerRequired    = errors.New("Only admins and owners can perform this action")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil keeps callers from returning a typed nil through the error interface.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Messages returns the field messages sorted by field name.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.Fields[k])
	}
	return out
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(e.Messages(), "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidField is shorthand for a single-field validation failure.
func InvalidField(field, message string) error {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
	BankName  string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"Transaction failed: Demanded amount (%s) is bigger than current amount (%s) in %s",
		FormatINR(e.Requested),
		FormatINR(e.Available),
		e.BankName,
	)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
