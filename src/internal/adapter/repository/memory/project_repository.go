package memory

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type ProjectRepository struct {
	store *Store
}

func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) Create(_ context.Context, project domain.Project) (domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.stamp()
	project.ID = newID()
	project.EmployeeIDs = append([]string(nil), project.EmployeeIDs...)
	project.CreatedAt = now
	project.UpdatedAt = now
	r.store.projects[project.ID] = project
	return project, nil
}

func (r *ProjectRepository) GetByID(_ context.Context, companyID string, id string) (domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	project, ok := r.store.projects[id]
	if !ok || project.CompanyID != companyID {
		return domain.Project{}, domain.ErrRecordNotFound
	}
	return project, nil
}

func (r *ProjectRepository) ListByCompany(_ context.Context, companyID string) ([]domain.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.Project, 0)
	for _, project := range r.store.projects {
		if project.CompanyID == companyID {
			out = append(out, project)
		}
	}
	sortByCreated(out, func(p domain.Project) (time.Time, string) { return p.CreatedAt, p.ID }, true)
	return out, nil
}

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if project, ok := r.store.projects[task.ProjectID]; !ok || project.CompanyID != task.CompanyID {
		return domain.Task{}, domain.ErrRecordNotFound
	}

	now := r.store.stamp()
	task.ID = newID()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.store.tasks[task.ID] = task
	return task, nil
}

func (r *TaskRepository) GetByID(_ context.Context, companyID string, id string) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok || task.CompanyID != companyID {
		return domain.Task{}, domain.ErrRecordNotFound
	}
	return task, nil
}

func (r *TaskRepository) Update(_ context.Context, task domain.Task) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.tasks[task.ID]
	if !ok || existing.CompanyID != task.CompanyID {
		return domain.Task{}, domain.ErrRecordNotFound
	}

	existing.Name = task.Name
	existing.Description = task.Description
	existing.AssignedTo = task.AssignedTo
	existing.Status = task.Status
	existing.CompletionDate = task.CompletionDate
	existing.UpdatedAt = r.store.stamp()
	r.store.tasks[task.ID] = existing
	return existing, nil
}

func (r *TaskRepository) Delete(_ context.Context, companyID string, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok || task.CompanyID != companyID {
		return domain.ErrRecordNotFound
	}
	delete(r.store.tasks, id)
	return nil
}
