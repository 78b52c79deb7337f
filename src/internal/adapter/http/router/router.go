package router

import (
	"net/http"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New builds the route table. Every registrar receives the same auth
// middleware and decides which of its routes are protected.
func New(authMiddleware func(http.Handler) http.Handler, registrars ...RouteRegistrar) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("/health", health)
	mux.Handle("/metrics", promhttp.Handler())

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux, authMiddleware)
		}
	}

	return mux
}

// Handler wraps the mux with tracing, request ids and access logging.
func Handler(mux *http.ServeMux) http.Handler {
	return middleware.Telemetry(middleware.RequestID(middleware.Logging(mux)))
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"ok"}` + "\n"))
}

