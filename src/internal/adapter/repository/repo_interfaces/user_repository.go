package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetApproval(ctx context.Context, companyID string, id string, approved bool, actorID string, at time.Time) (domain.User, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, company domain.Company) (domain.Company, error)
	GetByID(ctx context.Context, id string) (domain.Company, error)
}
