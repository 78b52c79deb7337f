package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.ProjectService = (*ProjectService)(nil)

type ProjectService struct {
	projectRepo repo_interfaces.ProjectRepository
	userRepo    repo_interfaces.UserRepository
	companyRepo repo_interfaces.CompanyRepository
}

func NewProjectService(
	projectRepo repo_interfaces.ProjectRepository,
	userRepo repo_interfaces.UserRepository,
	companyRepo repo_interfaces.CompanyRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, principal domain.Principal, req models.CreateProjectRequest) (commons.Response[models.ProjectResponse], error) {
	logger.Info("project service create request", logger.Fields{
		"userId":  principal.ID,
		"payload": logger.SanitizePayload(req),
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.ProjectResponse]("failed to create project", err), err
	}
	if !principal.IsManager() {
		return commons.FailureResponse[models.ProjectResponse]("failed to create project", domain.ErrManagerRequired), domain.ErrManagerRequired
	}

	req.Normalize()
	input, err := req.Parse()
	if err != nil {
		return commons.FailureResponse[models.ProjectResponse]("validation failed", err), err
	}

	if _, err := s.companyRepo.GetByID(ctx, principal.CompanyID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.FailureResponse[models.ProjectResponse]("failed to create project", domain.ErrNoCompany), domain.ErrNoCompany
		}
		logger.Error("project service company lookup failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.ProjectResponse]("failed to create project", "Unable to create project right now"), err
	}

	people, err := s.companyPeople(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("project service load members failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.ProjectResponse]("failed to create project", "Unable to create project right now"), err
	}

	v := domain.NewValidationError()
	if _, ok := people[req.ProjectHead]; !ok {
		v.Add("projectHead", "projectHead must be a member of the company")
	}
	for _, id := range req.Employees {
		if _, ok := people[id]; !ok {
			v.Add("employees", fmt.Sprintf("employee %s is not a member of the company", id))
		}
	}
	if err := v.OrNil(); err != nil {
		return commons.FailureResponse[models.ProjectResponse]("validation failed", err), err
	}

	project, err := s.projectRepo.Create(ctx, domain.Project{
		CompanyID:     principal.CompanyID,
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		ClientName:    req.ClientName,
		ProjectHeadID: req.ProjectHead,
		EmployeeIDs:   req.Employees,
		TotalRevenue:  input.TotalRevenue,
		Cost:          input.Cost,
	})
	if err != nil {
		logger.Error("project service create failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.ProjectResponse]("failed to create project", "Unable to create project right now"), err
	}

	logger.Info("project service create success", logger.Fields{
		"projectId": project.ID,
	})
	return commons.SuccessResponse("project created successfully", models.NewProjectResponse(project, lookupPerson(people))), nil
}

// ListProjects returns every company project to admins and owners, and only
// the projects a member heads or works on to everyone else.
func (s *ProjectService) ListProjects(ctx context.Context, principal domain.Principal) (commons.Response[[]models.ProjectResponse], error) {
	logger.Info("project service list request", logger.Fields{
		"userId":    principal.ID,
		"companyId": principal.CompanyID,
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[[]models.ProjectResponse]("failed to fetch projects", err), err
	}

	projects, err := s.projectRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("project service list failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[[]models.ProjectResponse]("failed to fetch projects", "Unable to fetch projects right now"), err
	}

	people, err := s.companyPeople(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("project service load members failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[[]models.ProjectResponse]("failed to fetch projects", "Unable to fetch projects right now"), err
	}
	lookup := lookupPerson(people)

	out := make([]models.ProjectResponse, 0, len(projects))
	for _, project := range visibleProjects(principal, projects) {
		out = append(out, models.NewProjectResponse(project, lookup))
	}
	return commons.SuccessResponse("projects fetched successfully", out), nil
}

func (s *ProjectService) companyPeople(ctx context.Context, companyID string) (map[string]domain.User, error) {
	users, err := s.userRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	people := make(map[string]domain.User, len(users))
	for _, user := range users {
		people[user.ID] = user
	}
	return people, nil
}

func visibleProjects(principal domain.Principal, projects []domain.Project) []domain.Project {
	if principal.IsManager() {
		return projects
	}
	out := make([]domain.Project, 0, len(projects))
	for _, project := range projects {
		if project.Involves(principal.ID) {
			out = append(out, project)
		}
	}
	return out
}

func lookupPerson(people map[string]domain.User) func(string) models.PersonRef {
	return func(id string) models.PersonRef {
		if person, ok := people[id]; ok {
			return models.NewPersonRef(person)
		}
		return models.PersonRef{ID: id}
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
