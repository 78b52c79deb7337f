package controller

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrManagerRequired, http.StatusUnauthorized},
		{domain.ErrPendingApproval, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNoCompany, http.StatusNotFound},
		{fmt.Errorf("load task: %w", domain.ErrRecordNotFound), http.StatusNotFound},
		{domain.InvalidField("amount", "amount is required"), http.StatusBadRequest},
		{&domain.InsufficientFundsError{Requested: decimal.NewFromInt(2), Available: decimal.NewFromInt(1)}, http.StatusBadRequest},
		{domain.ErrDuplicateAccount, http.StatusBadRequest},
		{domain.ErrCommitFailed, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestPathParam(t *testing.T) {
	id, ok := pathParam("/tasks/abc", "/tasks/")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	for _, path := range []string{"/tasks/", "/tasks/abc/extra", "/other/abc"} {
		_, ok := pathParam(path, "/tasks/")
		assert.False(t, ok, path)
	}
}
