package commons

import (
	"errors"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// FailureResponse builds the error envelope for err. Validation failures list
// one message per field; every other domain error surfaces its own text.
// Unclassified errors fall back to the generic message so internals stay hidden.
func FailureResponse[T any](fallback string, err error) Response[T] {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return ErrorResponse[T](domain.ErrInvalidInput.Error(), validationErr.Messages()...)
	}

	var fundsErr *domain.InsufficientFundsError
	if errors.As(err, &fundsErr) {
		return ErrorResponse[T](fundsErr.Error())
	}

	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return ErrorResponse[T](known.Error())
		}
	}

	return ErrorResponse[T](fallback)
}

var publicErrors = []error{
	domain.ErrUnauthenticated,
	domain.ErrNoCompany,
	domain.ErrAccountNotFound,
	domain.ErrDuplicateAccount,
	domain.ErrCommitFailed,
	domain.ErrForbidden,
	domain.ErrInvalidCredentials,
	domain.ErrPendingApproval,
	domain.ErrAccountRejected,
	domain.ErrDuplicateEmail,
	domain.ErrManagerRequired,
	domain.ErrRecordNotFound,
}
