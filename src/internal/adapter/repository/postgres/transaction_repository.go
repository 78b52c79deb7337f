package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Post inserts the transaction and moves the account balance inside one
// database transaction. The balance statement only matches while the result
// stays non-negative, so concurrent expenses cannot overdraw the account.
func (r *TransactionRepository) Post(ctx context.Context, txn domain.Transaction) (posting domain.LedgerPosting, err error) {
	logger.Info("transaction repository post", logger.Fields{
		"companyId":     txn.CompanyID,
		"bankAccountId": txn.BankAccountID,
		"type":          txn.Type,
		"amount":        txn.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin tx failed", err, nil)
		return domain.LedgerPosting{}, fmt.Errorf("begin ledger transaction: %w: %w", domain.ErrCommitFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `
INSERT INTO transactions (
	company_id,
	type,
	amount,
	bank_account_id,
	category,
	color,
	department,
	description,
	date,
	idempotency_key
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (company_id, idempotency_key) DO NOTHING
RETURNING id, created_at`

	err = tx.QueryRowContext(
		ctx,
		insertQuery,
		txn.CompanyID,
		txn.Type,
		txn.Amount,
		txn.BankAccountID,
		txn.Category,
		txn.Color,
		txn.Department,
		txn.Description,
		txn.Date,
		nullString(txn.IdempotencyKey),
	).Scan(&txn.ID, &txn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Idempotency key already used; nothing was written.
		_ = tx.Rollback()
		return r.replay(ctx, txn)
	}
	if err != nil {
		logger.Error("transaction repository insert failed", err, logger.Fields{
			"companyId":     txn.CompanyID,
			"bankAccountId": txn.BankAccountID,
		})
		return domain.LedgerPosting{}, fmt.Errorf("insert transaction: %w: %w", domain.ErrCommitFailed, err)
	}

	const balanceQuery = `
UPDATE bank_accounts
SET current_amount = current_amount + $3::numeric,
    updated_at = NOW()
WHERE id = $1
  AND company_id = $2
  AND current_amount + $3::numeric >= 0
RETURNING current_amount, bank_name`

	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx, balanceQuery, txn.BankAccountID, txn.CompanyID, txn.BalanceDelta()).Scan(&balance, &txn.Account)
	if errors.Is(err, sql.ErrNoRows) {
		err = classifyRejectedPosting(ctx, tx, txn)
		logger.Info("transaction repository balance update rejected", logger.Fields{
			"bankAccountId": txn.BankAccountID,
			"reason":        err.Error(),
		})
		return domain.LedgerPosting{}, err
	}
	if err != nil {
		logger.Error("transaction repository balance update failed", err, logger.Fields{
			"bankAccountId": txn.BankAccountID,
		})
		return domain.LedgerPosting{}, fmt.Errorf("update bank account balance: %w: %w", domain.ErrCommitFailed, err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit tx failed", err, nil)
		return domain.LedgerPosting{}, fmt.Errorf("commit ledger transaction: %w: %w", domain.ErrCommitFailed, err)
	}

	logger.Info("transaction repository post success", logger.Fields{
		"transactionId": txn.ID,
		"bankAccountId": txn.BankAccountID,
		"balance":       balance,
	})

	return domain.LedgerPosting{Transaction: txn, Balance: balance}, nil
}

// classifyRejectedPosting explains why the conditional balance update matched
// no row. It reads inside the same transaction, which is rolled back after.
func classifyRejectedPosting(ctx context.Context, tx *sql.Tx, txn domain.Transaction) error {
	const query = `
SELECT current_amount, bank_name
FROM bank_accounts
WHERE id = $1
  AND company_id = $2`

	var (
		current  decimal.Decimal
		bankName string
	)
	if err := tx.QueryRowContext(ctx, query, txn.BankAccountID, txn.CompanyID).Scan(&current, &bankName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("read rejected bank account: %w: %w", domain.ErrCommitFailed, err)
	}

	return &domain.InsufficientFundsError{
		Requested: txn.Amount,
		Available: current,
		BankName:  bankName,
	}
}

func (r *TransactionRepository) replay(ctx context.Context, txn domain.Transaction) (domain.LedgerPosting, error) {
	const query = `
SELECT t.id, t.company_id, t.type, t.amount, t.bank_account_id, b.bank_name, t.category, t.color,
       t.department, t.description, t.date, t.idempotency_key, t.created_at, b.current_amount
FROM transactions t
JOIN bank_accounts b ON b.id = t.bank_account_id
WHERE t.company_id = $1
  AND t.idempotency_key = $2`

	var (
		stored  domain.Transaction
		balance decimal.Decimal
	)
	row := r.db.QueryRowContext(ctx, query, txn.CompanyID, nullString(txn.IdempotencyKey))
	if err := scanTransaction(row, &stored, &balance); err != nil {
		logger.Error("transaction repository replay lookup failed", err, logger.Fields{
			"companyId": txn.CompanyID,
		})
		return domain.LedgerPosting{}, fmt.Errorf("load replayed transaction: %w: %w", domain.ErrCommitFailed, err)
	}

	logger.Info("transaction repository idempotent replay", logger.Fields{
		"transactionId": stored.ID,
		"companyId":     stored.CompanyID,
	})
	return domain.LedgerPosting{Transaction: stored, Balance: balance, Replayed: true}, nil
}

func (r *TransactionRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Transaction, error) {
	logger.Info("transaction repository list by company", logger.Fields{
		"companyId": companyID,
	})

	const query = `
SELECT t.id, t.company_id, t.type, t.amount, t.bank_account_id, b.bank_name, t.category, t.color,
       t.department, t.description, t.date, t.idempotency_key, t.created_at
FROM transactions t
JOIN bank_accounts b ON b.id = t.bank_account_id
WHERE t.company_id = $1
ORDER BY t.date DESC, t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"companyId": companyID,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var txn domain.Transaction
		if err := scanTransaction(rows, &txn); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) IncomeTotals(ctx context.Context, companyID string, thisMonth time.Time, lastMonth time.Time) (domain.RevenueTotals, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0),
       COALESCE(SUM(amount) FILTER (WHERE date >= $2 AND date < $3), 0),
       COALESCE(SUM(amount) FILTER (WHERE date >= $4 AND date < $2), 0)
FROM transactions
WHERE company_id = $1
  AND type = 'income'`

	nextMonth := thisMonth.AddDate(0, 1, 0)

	var totals domain.RevenueTotals
	if err := r.db.QueryRowContext(ctx, query, companyID, thisMonth, nextMonth, lastMonth).Scan(
		&totals.Total,
		&totals.ThisMonth,
		&totals.LastMonth,
	); err != nil {
		logger.Error("transaction repository income totals failed", err, logger.Fields{
			"companyId": companyID,
		})
		return domain.RevenueTotals{}, fmt.Errorf("sum income: %w", err)
	}

	return totals, nil
}

func (r *TransactionRepository) NetByAccount(ctx context.Context) (map[string]decimal.Decimal, error) {
	const query = `
SELECT bank_account_id,
       COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
FROM transactions
GROUP BY bank_account_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("transaction repository net by account failed", err, nil)
		return nil, fmt.Errorf("net transactions by account: %w", err)
	}
	defer rows.Close()

	net := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			accountID string
			amount    decimal.Decimal
		)
		if err := rows.Scan(&accountID, &amount); err != nil {
			return nil, fmt.Errorf("scan net by account: %w", err)
		}
		net[accountID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("net by account rows: %w", err)
	}

	return net, nil
}

func scanTransaction(row rowScanner, txn *domain.Transaction, extra ...any) error {
	var key sql.NullString
	dest := []any{
		&txn.ID,
		&txn.CompanyID,
		&txn.Type,
		&txn.Amount,
		&txn.BankAccountID,
		&txn.Account,
		&txn.Category,
		&txn.Color,
		&txn.Department,
		&txn.Description,
		&txn.Date,
		&key,
		&txn.CreatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return err
	}
	txn.IdempotencyKey = stringPtr(key)
	return nil
}
