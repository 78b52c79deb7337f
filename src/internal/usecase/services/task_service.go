package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.TaskService = (*TaskService)(nil)

type TaskService struct {
	taskRepo    repo_interfaces.TaskRepository
	projectRepo repo_interfaces.ProjectRepository
	userRepo    repo_interfaces.UserRepository
	now         func() time.Time
}

func NewTaskService(
	taskRepo repo_interfaces.TaskRepository,
	projectRepo repo_interfaces.ProjectRepository,
	userRepo repo_interfaces.UserRepository,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, principal domain.Principal, req models.CreateTaskRequest) (commons.Response[models.TaskResponse], error) {
	logger.Info("task service create request", logger.Fields{
		"userId":  principal.ID,
		"payload": logger.SanitizePayload(req),
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.TaskResponse]("failed to create task", err), err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return commons.FailureResponse[models.TaskResponse]("validation failed", err), err
	}

	project, err := s.loadProject(ctx, principal.CompanyID, req.Project)
	if err != nil {
		return s.failure("failed to create task", err)
	}
	if !canManageProject(principal, project) {
		return s.failure("failed to create task", domain.ErrForbidden)
	}

	assignee, err := s.assignee(ctx, principal.CompanyID, req.AssignedTo)
	if err != nil {
		return s.failure("failed to create task", err)
	}

	task, err := s.taskRepo.Create(ctx, domain.Task{
		CompanyID:   principal.CompanyID,
		ProjectID:   project.ID,
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  assignee,
		Status:      domain.TaskStatusToDo,
	})
	if err != nil {
		return s.failure("failed to create task", err)
	}

	logger.Info("task service create success", logger.Fields{
		"taskId":    task.ID,
		"projectId": task.ProjectID,
	})
	return commons.SuccessResponse("task created successfully", models.NewTaskResponse(task)), nil
}

// UpdateTask applies the supplied fields. Status changes are reserved for
// admins, owners and the project head.
func (s *TaskService) UpdateTask(ctx context.Context, principal domain.Principal, taskID string, req models.UpdateTaskRequest) (commons.Response[models.TaskResponse], error) {
	logger.Info("task service update request", logger.Fields{
		"userId":  principal.ID,
		"taskId":  taskID,
		"payload": logger.SanitizePayload(req),
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.TaskResponse]("failed to update task", err), err
	}
	if err := req.Validate(); err != nil {
		return commons.FailureResponse[models.TaskResponse]("validation failed", err), err
	}

	task, project, err := s.loadTask(ctx, principal.CompanyID, taskID)
	if err != nil {
		return s.failure("failed to update task", err)
	}
	if req.Status != nil && !canManageProject(principal, project) {
		return s.failure("failed to update task", domain.ErrForbidden)
	}

	if req.Name != nil {
		task.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.AssignedTo != nil {
		assignee, err := s.assignee(ctx, principal.CompanyID, strings.TrimSpace(*req.AssignedTo))
		if err != nil {
			return s.failure("failed to update task", err)
		}
		task.AssignedTo = assignee
	}
	if req.Status != nil {
		task.SetStatus(domain.TaskStatus(*req.Status), s.now())
	}

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		return s.failure("failed to update task", err)
	}

	logger.Info("task service update success", logger.Fields{
		"taskId": updated.ID,
		"status": updated.Status,
	})
	return commons.SuccessResponse("task updated successfully", models.NewTaskResponse(updated)), nil
}

func (s *TaskService) DeleteTask(ctx context.Context, principal domain.Principal, taskID string) (commons.Response[models.TaskResponse], error) {
	logger.Info("task service delete request", logger.Fields{
		"userId": principal.ID,
		"taskId": taskID,
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.TaskResponse]("failed to delete task", err), err
	}

	task, project, err := s.loadTask(ctx, principal.CompanyID, taskID)
	if err != nil {
		return s.failure("failed to delete task", err)
	}
	if !canManageProject(principal, project) {
		return s.failure("failed to delete task", domain.ErrForbidden)
	}

	if err := s.taskRepo.Delete(ctx, principal.CompanyID, task.ID); err != nil {
		return s.failure("failed to delete task", err)
	}

	logger.Info("task service delete success", logger.Fields{
		"taskId": task.ID,
	})
	return commons.SuccessResponse("task deleted successfully", models.NewTaskResponse(task)), nil
}

func (s *TaskService) loadProject(ctx context.Context, companyID string, projectID string) (domain.Project, error) {
	if !validID(projectID) {
		return domain.Project{}, domain.ErrRecordNotFound
	}
	return s.projectRepo.GetByID(ctx, companyID, projectID)
}

func (s *TaskService) loadTask(ctx context.Context, companyID string, taskID string) (domain.Task, domain.Project, error) {
	if !validID(taskID) {
		return domain.Task{}, domain.Project{}, domain.ErrRecordNotFound
	}
	task, err := s.taskRepo.GetByID(ctx, companyID, taskID)
	if err != nil {
		return domain.Task{}, domain.Project{}, err
	}
	project, err := s.projectRepo.GetByID(ctx, companyID, task.ProjectID)
	if err != nil {
		return domain.Task{}, domain.Project{}, err
	}
	return task, project, nil
}

// assignee resolves an optional assignee id to a member of the company. An
// empty id clears the assignment.
func (s *TaskService) assignee(ctx context.Context, companyID string, userID string) (*string, error) {
	if userID == "" {
		return nil, nil
	}
	invalid := domain.InvalidField("assignedTo", "assignedTo must be a member of the company")
	if !validID(userID) {
		return nil, invalid
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrRecordNotFound) || (err == nil && user.CompanyIDValue() != companyID) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	return &user.ID, nil
}

func (s *TaskService) failure(fallback string, err error) (commons.Response[models.TaskResponse], error) {
	if !isClientError(err) {
		logger.Error("task service "+fallback, err, nil)
	}
	return commons.FailureResponse[models.TaskResponse](fallback, err), err
}

func canManageProject(principal domain.Principal, project domain.Project) bool {
	return principal.IsManager() || project.ProjectHeadID == principal.ID
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrInvalidInput)
}
