package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
)

const userColumns = `id, company_id, name, email, password_hash, role, is_active, is_approved, is_rejected,
       approved_by, approved_at, rejected_by, rejected_at, last_login, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	logger.Info("user repository create", logger.Fields{
		"email":     user.Email,
		"companyId": user.CompanyID,
		"role":      user.Role,
	})

	const query = `
INSERT INTO users (
	company_id,
	name,
	email,
	password_hash,
	role,
	is_active,
	is_approved,
	is_rejected
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

	var created domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		nullString(user.CompanyID),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.IsApproved,
		user.IsRejected,
	), &created); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		logger.Error("user repository create failed", err, logger.Fields{
			"email": user.Email,
		})
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user repository create success", logger.Fields{
		"userId": created.ID,
	})
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	return r.getOne(ctx, "get user by id", query, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE LOWER(email) = LOWER($1)`

	return r.getOne(ctx, "get user by email", query, email)
}

func (r *UserRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE company_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		logger.Error("user repository list by company failed", err, logger.Fields{
			"companyId": companyID,
		})
		return nil, fmt.Errorf("list users by company: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `
UPDATE users
SET last_login = $2,
    updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		logger.Error("user repository update last login failed", err, logger.Fields{
			"userId": id,
		})
		return fmt.Errorf("update last login: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update last login rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) SetApproval(ctx context.Context, companyID string, id string, approved bool, actorID string, at time.Time) (domain.User, error) {
	logger.Info("user repository set approval", logger.Fields{
		"userId":   id,
		"approved": approved,
		"actorId":  actorID,
	})

	query := `
UPDATE users
SET is_approved = TRUE,
    is_rejected = FALSE,
    approved_by = $3,
    approved_at = $4,
    rejected_by = NULL,
    rejected_at = NULL,
    updated_at = NOW()
WHERE id = $1
  AND company_id = $2
RETURNING ` + userColumns
	if !approved {
		query = `
UPDATE users
SET is_approved = FALSE,
    is_rejected = TRUE,
    rejected_by = $3,
    rejected_at = $4,
    approved_by = NULL,
    approved_at = NULL,
    updated_at = NOW()
WHERE id = $1
  AND company_id = $2
RETURNING ` + userColumns
	}

	var updated domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, id, companyID, actorID, at), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		logger.Error("user repository set approval failed", err, logger.Fields{
			"userId": id,
		})
		return domain.User{}, fmt.Errorf("set user approval: %w", err)
	}
	return updated, nil
}

func (r *UserRepository) getOne(ctx context.Context, op string, query string, arg string) (domain.User, error) {
	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, arg), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("user repository record not found", logger.Fields{
				"operation": op,
			})
			return domain.User{}, domain.ErrRecordNotFound
		}
		logger.Error("user repository query failed", err, logger.Fields{
			"operation": op,
		})
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func scanUser(row rowScanner, user *domain.User) error {
	var (
		companyID  sql.NullString
		approvedBy sql.NullString
		approvedAt sql.NullTime
		rejectedBy sql.NullString
		rejectedAt sql.NullTime
		lastLogin  sql.NullTime
	)

	if err := row.Scan(
		&user.ID,
		&companyID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.IsApproved,
		&user.IsRejected,
		&approvedBy,
		&approvedAt,
		&rejectedBy,
		&rejectedAt,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return err
	}

	user.CompanyID = stringPtr(companyID)
	user.ApprovedBy = stringPtr(approvedBy)
	user.ApprovedAt = timePtr(approvedAt)
	user.RejectedBy = stringPtr(rejectedBy)
	user.RejectedAt = timePtr(rejectedAt)
	user.LastLogin = timePtr(lastLogin)
	return nil
}

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company domain.Company) (domain.Company, error) {
	const query = `
INSERT INTO companies (name)
VALUES ($1)
RETURNING id, name, created_at`

	var created domain.Company
	if err := r.db.QueryRowContext(ctx, query, company.Name).Scan(&created.ID, &created.Name, &created.CreatedAt); err != nil {
		logger.Error("company repository create failed", err, logger.Fields{
			"name": company.Name,
		})
		return domain.Company{}, fmt.Errorf("create company: %w", err)
	}

	logger.Info("company repository create success", logger.Fields{
		"companyId": created.ID,
	})
	return created, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (domain.Company, error) {
	const query = `
SELECT id, name, created_at
FROM companies
WHERE id = $1`

	var company domain.Company
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&company.ID, &company.Name, &company.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Company{}, domain.ErrRecordNotFound
		}
		logger.Error("company repository get by id failed", err, logger.Fields{
			"companyId": id,
		})
		return domain.Company{}, fmt.Errorf("get company by id: %w", err)
	}
	return company, nil
}
