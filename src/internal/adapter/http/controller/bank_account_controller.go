package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

type BankAccountController struct {
	service service_interfaces.BankAccountService
}

func NewBankAccountController(service service_interfaces.BankAccountService) *BankAccountController {
	return &BankAccountController{service: service}
}

func (c *BankAccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/banks", protect(c.banks, authMiddleware))
}

func (c *BankAccountController) banks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.listBankAccounts(w, r)
	case http.MethodPost:
		c.createBankAccount(w, r)
	default:
		methodNotAllowed[models.BankAccountResponse](w)
	}
}

func (c *BankAccountController) createBankAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateBankAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateBankAccount(r.Context(), principalFrom(r), req)
	status := writeResult(w, r, http.StatusCreated, response, err)
	logResponse(r, status, response, start)
}

func (c *BankAccountController) listBankAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListBankAccounts(r.Context(), principalFrom(r))
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response.Message, start)
}
