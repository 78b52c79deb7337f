package service_interfaces

import (
	"context"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type ProjectService interface {
	CreateProject(ctx context.Context, principal domain.Principal, req models.CreateProjectRequest) (commons.Response[models.ProjectResponse], error)
	ListProjects(ctx context.Context, principal domain.Principal) (commons.Response[[]models.ProjectResponse], error)
}

type TaskService interface {
	CreateTask(ctx context.Context, principal domain.Principal, req models.CreateTaskRequest) (commons.Response[models.TaskResponse], error)
	UpdateTask(ctx context.Context, principal domain.Principal, taskID string, req models.UpdateTaskRequest) (commons.Response[models.TaskResponse], error)
	DeleteTask(ctx context.Context, principal domain.Principal, taskID string) (commons.Response[models.TaskResponse], error)
}

type DashboardService interface {
	GetSummary(ctx context.Context, principal domain.Principal) (commons.Response[models.DashboardSummaryResponse], error)
}
