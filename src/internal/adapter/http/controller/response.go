package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/middleware"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrManagerRequired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrPendingApproval),
		errors.Is(err, domain.ErrAccountRejected):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNoCompany),
		errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeResult writes the service response, choosing the status from err.
func writeResult[T any](w http.ResponseWriter, r *http.Request, success int, response commons.Response[T], err error) int {
	status := success
	if err != nil {
		status = statusForError(err)
		if status >= http.StatusInternalServerError {
			logError(r, err, nil)
		}
	}
	writeJSON(w, status, response)
	return status
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[T]("invalid request body", err.Error()))
		return false
	}
	return true
}

func methodNotAllowed[T any](w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[T]("method not allowed"))
}

func principalFrom(r *http.Request) domain.Principal {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	return principal
}

func protect(handler http.HandlerFunc, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware == nil {
		return handler
	}
	return authMiddleware(handler)
}

// pathParam returns the single path segment that follows prefix.
func pathParam(path, prefix string) (string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
