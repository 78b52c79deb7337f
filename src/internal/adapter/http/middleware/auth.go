package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
)

// TokenCookieName is the HttpOnly cookie that carries the session token.
const TokenCookieName = "token"

type contextKey string

const principalKey contextKey = "principal"

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (domain.Principal, error)
}

// Authenticate resolves the caller from the token cookie or a bearer token and
// stores the principal on the request context. Requests without a valid
// principal never reach next.
func Authenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				logger.Info("auth middleware missing token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				writeError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
				return
			}

			principal, err := resolver.ResolvePrincipal(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					logger.Info("auth middleware unauthorized request", logger.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					writeError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
					return
				}
				logger.Error("auth middleware resolve principal failed", err, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				writeError(w, http.StatusInternalServerError, "Unable to authenticate right now")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// TokenFromRequest prefers the cookie and falls back to an Authorization
// bearer token.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse[struct{}](message))
}
