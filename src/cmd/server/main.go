package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/controller"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/middleware"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/router"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/postgres"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/auth"
	"github.com/api-sage/ledgerdesk/src/internal/config"
	"github.com/api-sage/ledgerdesk/src/internal/jobs"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/services"
)

type repositories struct {
	bankAccounts repo_interfaces.BankAccountRepository
	transactions repo_interfaces.TransactionRepository
	users        repo_interfaces.UserRepository
	companies    repo_interfaces.CompanyRepository
	projects     repo_interfaces.ProjectRepository
	tasks        repo_interfaces.TaskRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", err, nil)
		os.Exit(1)
	}
	logger.Configure(cfg.LogLevel)

	repos, db, err := openStorage(cfg)
	if err != nil {
		logger.Error("open storage", err, logger.Fields{"driver": cfg.StorageDriver})
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authService := services.NewAuthService(repos.users, repos.companies, tokens)
	ledgerService := services.NewLedgerService(repos.bankAccounts, repos.transactions)
	reconciliationService := services.NewReconciliationService(repos.bankAccounts, repos.transactions)

	mux := router.New(
		middleware.Authenticate(authService),
		controller.NewAuthController(authService, cfg.CookieSecure),
		controller.NewBankAccountController(services.NewBankAccountService(repos.bankAccounts)),
		controller.NewTransactionController(ledgerService),
		controller.NewCategoryController(services.NewCategoryService()),
		controller.NewUserController(services.NewTeamService(repos.users)),
		controller.NewProjectController(
			services.NewProjectService(repos.projects, repos.users, repos.companies),
			services.NewTaskService(repos.tasks, repos.projects, repos.users),
			services.NewDashboardService(repos.bankAccounts, repos.transactions, repos.projects),
		),
	)

	var reconcileJob *jobs.ReconciliationJob
	if cfg.ReconcileEnable {
		reconcileJob = jobs.NewReconciliationJob(reconciliationService, cfg.ReconcileAt)
		reconcileJob.Start()
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", logger.Fields{
			"addr":    cfg.HTTPAddr,
			"storage": cfg.StorageDriver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", err, nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", nil)
	if reconcileJob != nil {
		reconcileJob.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", err, nil)
	}
}

// openStorage returns the repositories for the configured driver. The *sql.DB
// is nil for the in-memory store.
func openStorage(cfg config.Config) (repositories, *sql.DB, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage; data is lost on restart", nil)
		store := memory.NewStore()
		return repositories{
			bankAccounts: memory.NewBankAccountRepository(store),
			transactions: memory.NewTransactionRepository(store),
			users:        memory.NewUserRepository(store),
			companies:    memory.NewCompanyRepository(store),
			projects:     memory.NewProjectRepository(store),
			tasks:        memory.NewTaskRepository(store),
		}, nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN, postgres.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		return repositories{}, nil, err
	}

	if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return repositories{}, nil, err
	}
	logger.Info("migrations applied", logger.Fields{"dir": cfg.MigrationsDir})

	return repositories{
		bankAccounts: postgres.NewBankAccountRepository(db),
		transactions: postgres.NewTransactionRepository(db),
		users:        postgres.NewUserRepository(db),
		companies:    postgres.NewCompanyRepository(db),
		projects:     postgres.NewProjectRepository(db),
		tasks:        postgres.NewTaskRepository(db),
	}, db, nil
}
