package services

import (
	"context"
	"errors"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/metrics"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.BankAccountService = (*BankAccountService)(nil)

type BankAccountService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
}

func NewBankAccountService(bankAccountRepo repo_interfaces.BankAccountRepository) *BankAccountService {
	return &BankAccountService{bankAccountRepo: bankAccountRepo}
}

func (s *BankAccountService) CreateBankAccount(ctx context.Context, principal domain.Principal, req models.CreateBankAccountRequest) (resp commons.Response[models.BankAccountResponse], err error) {
	ctx, span := tracer.Start(ctx, "bankAccounts.Create")
	defer func() { endSpan(span, err) }()

	logger.Info("bank account service create request", logger.Fields{
		"companyId": principal.CompanyID,
		"payload":   logger.SanitizePayload(req),
	})

	if err = principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.BankAccountResponse]("failed to create bank account", err), err
	}

	req.Normalize()
	amount, err := req.Parse()
	if err != nil {
		return commons.FailureResponse[models.BankAccountResponse]("validation failed", err), err
	}

	exists, err := s.bankAccountRepo.ExistsByAccountNumber(ctx, principal.CompanyID, req.AccountNumber)
	if err != nil {
		logger.Error("bank account service duplicate check failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.BankAccountResponse]("failed to create bank account", "Unable to create bank account right now"), err
	}
	if exists {
		err = domain.ErrDuplicateAccount
		return commons.FailureResponse[models.BankAccountResponse]("failed to create bank account", err), err
	}

	account, err := s.bankAccountRepo.Create(ctx, domain.BankAccount{
		CompanyID:     principal.CompanyID,
		BankName:      req.BankName,
		IFSCCode:      req.IFSCCode,
		AccountNumber: req.AccountNumber,
		AccountType:   domain.AccountType(req.AccountType),
		OpeningAmount: amount,
		CurrentAmount: amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return commons.FailureResponse[models.BankAccountResponse]("failed to create bank account", err), err
		}
		logger.Error("bank account service create failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.BankAccountResponse]("failed to create bank account", "Unable to create bank account right now"), err
	}

	metrics.BankAccountsCreated.Inc()
	logger.Info("bank account service create success", logger.Fields{
		"bankAccountId": account.ID,
		"companyId":     account.CompanyID,
	})
	return commons.SuccessResponse("bank account created successfully", models.NewBankAccountResponse(account)), nil
}

func (s *BankAccountService) ListBankAccounts(ctx context.Context, principal domain.Principal) (commons.Response[[]models.BankAccountResponse], error) {
	logger.Info("bank account service list request", logger.Fields{
		"companyId": principal.CompanyID,
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[[]models.BankAccountResponse]("failed to fetch bank accounts", err), err
	}

	accounts, err := s.bankAccountRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("bank account service list failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[[]models.BankAccountResponse]("failed to fetch bank accounts", "Unable to fetch bank accounts right now"), err
	}

	out := make([]models.BankAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, models.NewBankAccountResponse(account))
	}

	logger.Info("bank account service list success", logger.Fields{
		"companyId": principal.CompanyID,
		"count":     len(out),
	})
	return commons.SuccessResponse("bank accounts fetched successfully", out), nil
}
