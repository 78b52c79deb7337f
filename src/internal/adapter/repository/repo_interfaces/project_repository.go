package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	GetByID(ctx context.Context, companyID string, id string) (domain.Project, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Project, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, companyID string, id string) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, companyID string, id string) error
}
