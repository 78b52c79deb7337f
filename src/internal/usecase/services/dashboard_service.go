package services

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"golang.org/x/sync/errgroup"
)

var _ service_interfaces.DashboardService = (*DashboardService)(nil)

type DashboardService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	projectRepo     repo_interfaces.ProjectRepository
	now             func() time.Time
}

func NewDashboardService(
	bankAccountRepo repo_interfaces.BankAccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	projectRepo repo_interfaces.ProjectRepository,
) *DashboardService {
	return &DashboardService{
		bankAccountRepo: bankAccountRepo,
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		now:             time.Now,
	}
}

// GetSummary loads balances, revenue and projects concurrently.
func (s *DashboardService) GetSummary(ctx context.Context, principal domain.Principal) (resp commons.Response[models.DashboardSummaryResponse], err error) {
	ctx, span := tracer.Start(ctx, "dashboard.GetSummary")
	defer func() { endSpan(span, err) }()

	logger.Info("dashboard service summary request", logger.Fields{
		"companyId": principal.CompanyID,
	})

	if err = principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.DashboardSummaryResponse]("failed to fetch dashboard summary", err), err
	}

	thisMonth, lastMonth := domain.MonthBounds(s.now())

	var summary domain.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.bankAccountRepo.TotalBalance(gctx, principal.CompanyID)
		if err != nil {
			return err
		}
		summary.TotalBankBalance = total
		return nil
	})
	g.Go(func() error {
		totals, err := s.transactionRepo.IncomeTotals(gctx, principal.CompanyID, thisMonth, lastMonth)
		if err != nil {
			return err
		}
		summary.Revenue = totals
		return nil
	})
	g.Go(func() error {
		projects, err := s.projectRepo.ListByCompany(gctx, principal.CompanyID)
		if err != nil {
			return err
		}
		for _, project := range visibleProjects(principal, projects) {
			if !project.IsArchived {
				summary.ActiveProjects++
			}
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		logger.Error("dashboard service summary failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.DashboardSummaryResponse]("failed to fetch dashboard summary", "Unable to fetch dashboard summary right now"), err
	}

	summary.RevenueGrowth = domain.RevenueGrowth(summary.Revenue.ThisMonth, summary.Revenue.LastMonth)

	logger.Info("dashboard service summary success", logger.Fields{
		"companyId":      principal.CompanyID,
		"activeProjects": summary.ActiveProjects,
	})
	return commons.SuccessResponse("dashboard summary fetched successfully", models.NewDashboardSummaryResponse(summary)), nil
}
