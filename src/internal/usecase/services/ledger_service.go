package services

import (
	"context"
	"errors"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/metrics"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var _ service_interfaces.LedgerService = (*LedgerService)(nil)

type LedgerService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewLedgerService(
	bankAccountRepo repo_interfaces.BankAccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *LedgerService {
	return &LedgerService{
		bankAccountRepo: bankAccountRepo,
		transactionRepo: transactionRepo,
	}
}

// RecordTransaction validates the request, resolves the bank account and posts
// the transaction together with its balance change. Nothing is written unless
// every check passes.
func (s *LedgerService) RecordTransaction(ctx context.Context, principal domain.Principal, req models.CreateTransactionRequest) (resp commons.Response[models.RecordTransactionResponse], err error) {
	ctx, span := tracer.Start(ctx, "ledger.RecordTransaction")
	defer func() { endSpan(span, err) }()

	logger.Info("ledger service record transaction request", logger.Fields{
		"userId":    principal.ID,
		"companyId": principal.CompanyID,
		"payload":   logger.SanitizePayload(req),
	})

	txType := domain.TransactionType(req.Type)
	defer func() {
		label := string(txType)
		if !txType.Valid() {
			label = "unknown"
		}
		metrics.TransactionsRecorded.WithLabelValues(label, postingOutcome(resp, err)).Inc()
	}()

	if err = principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.RecordTransactionResponse]("failed to record transaction", err), err
	}

	req.Normalize()
	txType = domain.TransactionType(req.Type)
	var input models.TransactionInput
	if input, err = req.Parse(); err != nil {
		return commons.FailureResponse[models.RecordTransactionResponse]("validation failed", err), err
	}
	amount, date := input.Amount, input.Date

	account, err := s.resolveAccount(ctx, principal.CompanyID, req)
	if err != nil {
		logger.Info("ledger service account resolution failed", logger.Fields{
			"companyId": principal.CompanyID,
			"account":   req.Account,
			"accountId": req.AccountID,
			"reason":    err.Error(),
		})
		return commons.FailureResponse[models.RecordTransactionResponse]("failed to record transaction", err), err
	}
	span.SetAttributes(
		attribute.String("ledger.company_id", principal.CompanyID),
		attribute.String("ledger.bank_account_id", account.ID),
		attribute.String("ledger.type", req.Type),
	)

	if txType == domain.TransactionTypeExpense && account.CurrentAmount.LessThan(amount) {
		err = &domain.InsufficientFundsError{
			Requested: amount,
			Available: account.CurrentAmount,
			BankName:  account.BankName,
		}
		return commons.FailureResponse[models.RecordTransactionResponse]("failed to record transaction", err), err
	}
	if txType == domain.TransactionTypeIncome && account.CurrentAmount.Add(amount).GreaterThan(models.MaxAmount) {
		err = domain.InvalidField("amount", "amount would take the balance above "+models.MaxAmount.StringFixed(2))
		return commons.FailureResponse[models.RecordTransactionResponse]("validation failed", err), err
	}

	department := req.Department
	if department == "" {
		department = domain.DefaultDepartment
	}

	txn := domain.Transaction{
		CompanyID:     principal.CompanyID,
		Type:          txType,
		Amount:        amount,
		BankAccountID: account.ID,
		Account:       account.BankName,
		Category:      req.Category,
		Color:         domain.CategoryColor(req.Category),
		Department:    department,
		Description:   req.Description,
		Date:          date,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		txn.IdempotencyKey = &key
	}

	start := time.Now()
	posting, err := s.transactionRepo.Post(ctx, txn)
	metrics.PostingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if !isLedgerRejection(err) {
			logger.Error("ledger service posting failed", err, logger.Fields{
				"companyId":     principal.CompanyID,
				"bankAccountId": account.ID,
			})
		}
		return commons.FailureResponse[models.RecordTransactionResponse]("failed to record transaction", err), err
	}

	logger.Info("ledger service record transaction success", logger.Fields{
		"transactionId": posting.Transaction.ID,
		"bankAccountId": posting.Transaction.BankAccountID,
		"balance":       posting.Balance.StringFixed(2),
		"replayed":      posting.Replayed,
	})

	message := "transaction recorded successfully"
	if posting.Replayed {
		message = "transaction already recorded"
	}
	return commons.SuccessResponse(message, models.RecordTransactionResponse{
		TransactionResponse: models.NewTransactionResponse(posting.Transaction),
		Balance:             models.Money(posting.Balance),
		Replayed:            posting.Replayed,
	}), nil
}

// resolveAccount prefers an explicit account id and otherwise matches on bank
// name, which must identify exactly one account of the company.
func (s *LedgerService) resolveAccount(ctx context.Context, companyID string, req models.CreateTransactionRequest) (domain.BankAccount, error) {
	if req.AccountID != "" {
		if _, err := uuid.Parse(req.AccountID); err != nil {
			return domain.BankAccount{}, domain.ErrAccountNotFound
		}
		account, err := s.bankAccountRepo.GetByID(ctx, companyID, req.AccountID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.BankAccount{}, domain.ErrAccountNotFound
		}
		if err != nil {
			return domain.BankAccount{}, err
		}
		return account, nil
	}

	accounts, err := s.bankAccountRepo.FindByBankName(ctx, companyID, req.Account)
	if err != nil {
		return domain.BankAccount{}, err
	}
	switch len(accounts) {
	case 0:
		return domain.BankAccount{}, domain.ErrAccountNotFound
	case 1:
		return accounts[0], nil
	default:
		return domain.BankAccount{}, domain.InvalidField("account", "account name is ambiguous; use accountId")
	}
}

func (s *LedgerService) ListTransactions(ctx context.Context, principal domain.Principal) (resp commons.Response[[]models.TransactionResponse], err error) {
	ctx, span := tracer.Start(ctx, "ledger.ListTransactions")
	defer func() { endSpan(span, err) }()

	logger.Info("ledger service list transactions request", logger.Fields{
		"companyId": principal.CompanyID,
	})

	if err = principal.RequireCompany(); err != nil {
		return commons.FailureResponse[[]models.TransactionResponse]("failed to fetch transactions", err), err
	}

	transactions, err := s.transactionRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("ledger service list transactions failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	out := make([]models.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		out = append(out, models.NewTransactionResponse(txn))
	}

	logger.Info("ledger service list transactions success", logger.Fields{
		"companyId": principal.CompanyID,
		"count":     len(out),
	})
	return commons.SuccessResponse("transactions fetched successfully", out), nil
}

func isLedgerRejection(err error) bool {
	return errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrInvalidInput)
}

func postingOutcome(resp commons.Response[models.RecordTransactionResponse], err error) string {
	switch {
	case err == nil && resp.Data != nil && resp.Data.Replayed:
		return metrics.OutcomeReplayed
	case err == nil:
		return metrics.OutcomeCommitted
	case errors.Is(err, domain.ErrInsufficientFunds):
		return metrics.OutcomeInsufficientFunds
	case errors.Is(err, domain.ErrAccountNotFound):
		return metrics.OutcomeAccountNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailed
	}
}
