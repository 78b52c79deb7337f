package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	resolve func(ctx context.Context, token string) (domain.Principal, error)
}

func (s stubResolver) ResolvePrincipal(ctx context.Context, token string) (domain.Principal, error) {
	return s.resolve(ctx, token)
}

func TestAuthenticate(t *testing.T) {
	resolver := stubResolver{resolve: func(_ context.Context, token string) (domain.Principal, error) {
		switch token {
		case "good":
			return domain.Principal{ID: "u1", CompanyID: "c1", Role: domain.RoleOwner}, nil
		case "broken":
			return domain.Principal{}, errors.New("database down")
		default:
			return domain.Principal{}, domain.ErrUnauthenticated
		}
	}}

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		expectedStatus int
		expectedUser   bool
	}{
		{
			name: "token cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "good"})
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name: "bearer header",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good")
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name:           "no token",
			setupRequest:   func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "basic scheme ignored",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic Z29vZA==")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "rejected token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer forged")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "resolver failure",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer broken")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal, ok := PrincipalFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, "u1", principal.ID)
				reached = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/banks", nil)
			tt.setupRequest(req)
			rr := httptest.NewRecorder()
			Authenticate(resolver)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedUser, reached)
		})
	}
}

func TestPrincipalFromContextMissing(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestIDAssignsAndEchoes(t *testing.T) {
	handler := RequestID(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}
