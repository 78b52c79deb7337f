package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/shopspring/decimal"
)

const bankAccountColumns = `id, company_id, bank_name, ifsc_code, account_number, account_type, opening_amount, current_amount, created_at, updated_at`

type BankAccountRepository struct {
	db *sql.DB
}

func NewBankAccountRepository(db *sql.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) Create(ctx context.Context, account domain.BankAccount) (domain.BankAccount, error) {
	logger.Info("bank account repository create", logger.Fields{
		"companyId":     account.CompanyID,
		"bankName":      account.BankName,
		"accountNumber": account.AccountNumber,
	})

	const query = `
INSERT INTO bank_accounts (
	company_id,
	bank_name,
	ifsc_code,
	account_number,
	account_type,
	opening_amount,
	current_amount
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + bankAccountColumns

	var created domain.BankAccount
	if err := scanBankAccount(r.db.QueryRowContext(
		ctx,
		query,
		account.CompanyID,
		account.BankName,
		account.IFSCCode,
		account.AccountNumber,
		account.AccountType,
		account.OpeningAmount,
		account.CurrentAmount,
	), &created); err != nil {
		if isUniqueViolation(err) {
			logger.Info("bank account repository duplicate account number", logger.Fields{
				"companyId":     account.CompanyID,
				"accountNumber": account.AccountNumber,
			})
			return domain.BankAccount{}, domain.ErrDuplicateAccount
		}
		logger.Error("bank account repository create failed", err, logger.Fields{
			"companyId":     account.CompanyID,
			"accountNumber": account.AccountNumber,
		})
		return domain.BankAccount{}, fmt.Errorf("create bank account: %w", err)
	}

	logger.Info("bank account repository create success", logger.Fields{
		"bankAccountId": created.ID,
		"companyId":     created.CompanyID,
	})
	return created, nil
}

func (r *BankAccountRepository) GetByID(ctx context.Context, companyID string, id string) (domain.BankAccount, error) {
	const query = `
SELECT ` + bankAccountColumns + `
FROM bank_accounts
WHERE id = $1
  AND company_id = $2`

	var account domain.BankAccount
	if err := scanBankAccount(r.db.QueryRowContext(ctx, query, id, companyID), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("bank account repository record not found", logger.Fields{
				"bankAccountId": id,
				"companyId":     companyID,
			})
			return domain.BankAccount{}, domain.ErrRecordNotFound
		}
		logger.Error("bank account repository get by id failed", err, logger.Fields{
			"bankAccountId": id,
		})
		return domain.BankAccount{}, fmt.Errorf("get bank account by id: %w", err)
	}

	return account, nil
}

func (r *BankAccountRepository) FindByBankName(ctx context.Context, companyID string, bankName string) ([]domain.BankAccount, error) {
	const query = `
SELECT ` + bankAccountColumns + `
FROM bank_accounts
WHERE company_id = $1
  AND bank_name = $2
ORDER BY created_at`

	return r.list(ctx, "find bank accounts by bank name", query, companyID, bankName)
}

func (r *BankAccountRepository) ExistsByAccountNumber(ctx context.Context, companyID string, accountNumber string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM bank_accounts
	WHERE company_id = $1
	  AND account_number = $2
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, companyID, accountNumber).Scan(&exists); err != nil {
		logger.Error("bank account repository exists by account number failed", err, logger.Fields{
			"companyId":     companyID,
			"accountNumber": accountNumber,
		})
		return false, fmt.Errorf("check bank account by account number: %w", err)
	}

	return exists, nil
}

func (r *BankAccountRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	const query = `
SELECT ` + bankAccountColumns + `
FROM bank_accounts
WHERE company_id = $1
ORDER BY created_at DESC`

	return r.list(ctx, "list bank accounts by company", query, companyID)
}

func (r *BankAccountRepository) ListAll(ctx context.Context) ([]domain.BankAccount, error) {
	const query = `
SELECT ` + bankAccountColumns + `
FROM bank_accounts
ORDER BY company_id, created_at`

	return r.list(ctx, "list all bank accounts", query)
}

func (r *BankAccountRepository) TotalBalance(ctx context.Context, companyID string) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(current_amount), 0)
FROM bank_accounts
WHERE company_id = $1`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, companyID).Scan(&total); err != nil {
		logger.Error("bank account repository total balance failed", err, logger.Fields{
			"companyId": companyID,
		})
		return decimal.Zero, fmt.Errorf("sum bank account balances: %w", err)
	}
	return total, nil
}

func (r *BankAccountRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("bank account repository query failed", err, logger.Fields{"operation": op})
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	accounts := make([]domain.BankAccount, 0)
	for rows.Next() {
		var account domain.BankAccount
		if err := scanBankAccount(rows, &account); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}

	return accounts, nil
}

func scanBankAccount(row rowScanner, account *domain.BankAccount) error {
	return row.Scan(
		&account.ID,
		&account.CompanyID,
		&account.BankName,
		&account.IFSCCode,
		&account.AccountNumber,
		&account.AccountType,
		&account.OpeningAmount,
		&account.CurrentAmount,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}
