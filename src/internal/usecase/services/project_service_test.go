package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectRequest(head string, employees ...string) models.CreateProjectRequest {
	return models.CreateProjectRequest{
		Name:         "Website revamp",
		Description:  "New marketing site",
		StartDate:    "2026-01-01",
		EndDate:      "2026-06-30",
		ClientName:   "Globex",
		ProjectHead:  head,
		Employees:    employees,
		TotalRevenue: json.RawMessage("50000"),
		Cost:         json.RawMessage(`"12000.5"`),
	}
}

func (f *fixture) projectServices() (*services.ProjectService, *services.TaskService) {
	return services.NewProjectService(f.projects, f.users, f.companies),
		services.NewTaskService(f.tasks, f.projects, f.users)
}

func TestProjectServiceCreateRequiresManager(t *testing.T) {
	f := newFixture(t)
	employee := f.addUser(t, "eve@acme.test", domain.RoleEmployee)
	projects, _ := f.projectServices()

	resp, err := projects.CreateProject(context.Background(), employee.Principal(), projectRequest(employee.ID))
	require.ErrorIs(t, err, domain.ErrManagerRequired)
	assert.Equal(t, domain.ErrManagerRequired.Error(), resp.Message)
}

func TestProjectServiceCreateAndList(t *testing.T) {
	f := newFixture(t)
	head := f.addUser(t, "hank@acme.test", domain.RoleEmployee)
	worker := f.addUser(t, "wendy@acme.test", domain.RoleEmployee)
	bystander := f.addUser(t, "bob@acme.test", domain.RoleEmployee)
	projects, _ := f.projectServices()

	created, err := projects.CreateProject(context.Background(), f.owner, projectRequest(head.ID, worker.ID, worker.ID))
	require.NoError(t, err)
	assert.Equal(t, head.ID, created.Data.ProjectHead.ID)
	assert.Equal(t, "hank@acme.test", created.Data.ProjectHead.Email)
	require.Len(t, created.Data.Employees, 1)
	assert.Equal(t, "12000.50", created.Data.Cost.String())

	all, err := projects.ListProjects(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Len(t, *all.Data, 1)

	mine, err := projects.ListProjects(context.Background(), worker.Principal())
	require.NoError(t, err)
	assert.Len(t, *mine.Data, 1)

	none, err := projects.ListProjects(context.Background(), bystander.Principal())
	require.NoError(t, err)
	assert.Empty(t, *none.Data)
}

func TestProjectServiceCreateValidation(t *testing.T) {
	f := newFixture(t)
	projects, _ := f.projectServices()

	req := projectRequest("8c8f6b38-4bd7-4c1a-a1a2-2a9a1f0f1c11")
	_, err := projects.CreateProject(context.Background(), f.owner, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	req = projectRequest(f.owner.ID)
	req.EndDate = "2025-12-31"
	_, err = projects.CreateProject(context.Background(), f.owner, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	req = projectRequest(f.owner.ID)
	req.Cost = json.RawMessage("-1")
	_, err = projects.CreateProject(context.Background(), f.owner, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaskServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	head := f.addUser(t, "hank@acme.test", domain.RoleEmployee)
	worker := f.addUser(t, "wendy@acme.test", domain.RoleEmployee)
	projects, tasks := f.projectServices()

	project, err := projects.CreateProject(context.Background(), f.owner, projectRequest(head.ID, worker.ID))
	require.NoError(t, err)

	_, err = tasks.CreateTask(context.Background(), worker.Principal(), models.CreateTaskRequest{
		Name:    "Draft copy",
		Project: project.Data.ID,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	created, err := tasks.CreateTask(context.Background(), head.Principal(), models.CreateTaskRequest{
		Name:       "Draft copy",
		Project:    project.Data.ID,
		AssignedTo: worker.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TaskStatusToDo), created.Data.Status)
	assert.Nil(t, created.Data.CompletionDate)
	require.NotNil(t, created.Data.AssignedTo)
	assert.Equal(t, worker.ID, *created.Data.AssignedTo)

	done := string(domain.TaskStatusDone)
	_, err = tasks.UpdateTask(context.Background(), worker.Principal(), created.Data.ID, models.UpdateTaskRequest{Status: &done})
	require.ErrorIs(t, err, domain.ErrForbidden)

	rename := "Final copy"
	renamed, err := tasks.UpdateTask(context.Background(), worker.Principal(), created.Data.ID, models.UpdateTaskRequest{Name: &rename})
	require.NoError(t, err)
	assert.Equal(t, "Final copy", renamed.Data.Name)

	finished, err := tasks.UpdateTask(context.Background(), head.Principal(), created.Data.ID, models.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, done, finished.Data.Status)
	assert.NotNil(t, finished.Data.CompletionDate)

	reopen := string(domain.TaskStatusInProgress)
	reopened, err := tasks.UpdateTask(context.Background(), f.owner, created.Data.ID, models.UpdateTaskRequest{Status: &reopen})
	require.NoError(t, err)
	assert.Nil(t, reopened.Data.CompletionDate)

	_, err = tasks.DeleteTask(context.Background(), worker.Principal(), created.Data.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = tasks.DeleteTask(context.Background(), head.Principal(), created.Data.ID)
	require.NoError(t, err)

	_, err = tasks.DeleteTask(context.Background(), head.Principal(), created.Data.ID)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestTaskServiceRejectsBadReferences(t *testing.T) {
	f := newFixture(t)
	projects, tasks := f.projectServices()

	project, err := projects.CreateProject(context.Background(), f.owner, projectRequest(f.owner.ID))
	require.NoError(t, err)

	_, err = tasks.CreateTask(context.Background(), f.owner, models.CreateTaskRequest{Name: "x", Project: "missing"})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = tasks.CreateTask(context.Background(), f.owner, models.CreateTaskRequest{
		Name:       "x",
		Project:    project.Data.ID,
		AssignedTo: "8c8f6b38-4bd7-4c1a-a1a2-2a9a1f0f1c11",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := "Blocked"
	_, err = tasks.UpdateTask(context.Background(), f.owner, "anything", models.UpdateTaskRequest{Status: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
