package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type TransactionController struct {
	service service_interfaces.LedgerService
}

func NewTransactionController(service service_interfaces.LedgerService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/transactions", protect(c.transactions, authMiddleware))
}

func (c *TransactionController) transactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.listTransactions(w, r)
	case http.MethodPost:
		c.recordTransaction(w, r)
	default:
		methodNotAllowed[models.TransactionResponse](w)
	}
}

func (c *TransactionController) recordTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.IdempotencyKey = r.Header.Get(IdempotencyKeyHeader)
	logRequest(r, req)

	response, err := c.service.RecordTransaction(r.Context(), principalFrom(r), req)
	success := http.StatusCreated
	if err == nil && response.Data != nil && response.Data.Replayed {
		success = http.StatusOK
	}
	status := writeResult(w, r, success, response, err)
	logResponse(r, status, response, start)
}

func (c *TransactionController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListTransactions(r.Context(), principalFrom(r))
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response.Message, start)
}
