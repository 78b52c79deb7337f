package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/lib/pq"
)

const projectSelect = `
SELECT p.id, p.company_id, p.name, p.description, p.start_date, p.end_date, p.client_name,
       p.project_head_id, p.total_revenue, p.cost, p.is_archived, p.created_at, p.updated_at,
       COALESCE(array_agg(pe.user_id::text) FILTER (WHERE pe.user_id IS NOT NULL), '{}')
FROM projects p
LEFT JOIN project_employees pe ON pe.project_id = p.id`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (created domain.Project, err error) {
	logger.Info("project repository create", logger.Fields{
		"companyId": project.CompanyID,
		"name":      project.Name,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Project{}, fmt.Errorf("begin project transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertProject = `
INSERT INTO projects (
	company_id,
	name,
	description,
	start_date,
	end_date,
	client_name,
	project_head_id,
	total_revenue,
	cost
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, is_archived, created_at, updated_at`

	if err = tx.QueryRowContext(
		ctx,
		insertProject,
		project.CompanyID,
		project.Name,
		project.Description,
		project.StartDate,
		project.EndDate,
		project.ClientName,
		project.ProjectHeadID,
		project.TotalRevenue,
		project.Cost,
	).Scan(&project.ID, &project.IsArchived, &project.CreatedAt, &project.UpdatedAt); err != nil {
		logger.Error("project repository create failed", err, logger.Fields{
			"companyId": project.CompanyID,
		})
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}

	const insertEmployees = `
INSERT INTO project_employees (project_id, user_id)
SELECT $1, UNNEST($2::uuid[])
ON CONFLICT DO NOTHING`

	if len(project.EmployeeIDs) > 0 {
		if _, err = tx.ExecContext(ctx, insertEmployees, project.ID, pq.Array(project.EmployeeIDs)); err != nil {
			logger.Error("project repository add employees failed", err, logger.Fields{
				"projectId": project.ID,
			})
			return domain.Project{}, fmt.Errorf("add project employees: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Project{}, fmt.Errorf("commit project transaction: %w", err)
	}

	logger.Info("project repository create success", logger.Fields{
		"projectId": project.ID,
	})
	return project, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, companyID string, id string) (domain.Project, error) {
	query := projectSelect + `
WHERE p.id = $1
  AND p.company_id = $2
GROUP BY p.id`

	var project domain.Project
	if err := scanProject(r.db.QueryRowContext(ctx, query, id, companyID), &project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, domain.ErrRecordNotFound
		}
		logger.Error("project repository get by id failed", err, logger.Fields{
			"projectId": id,
		})
		return domain.Project{}, fmt.Errorf("get project by id: %w", err)
	}
	return project, nil
}

func (r *ProjectRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Project, error) {
	query := projectSelect + `
WHERE p.company_id = $1
GROUP BY p.id
ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		logger.Error("project repository list by company failed", err, logger.Fields{
			"companyId": companyID,
		})
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var project domain.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects rows: %w", err)
	}
	return projects, nil
}

func scanProject(row rowScanner, project *domain.Project) error {
	var employees []string
	if err := row.Scan(
		&project.ID,
		&project.CompanyID,
		&project.Name,
		&project.Description,
		&project.StartDate,
		&project.EndDate,
		&project.ClientName,
		&project.ProjectHeadID,
		&project.TotalRevenue,
		&project.Cost,
		&project.IsArchived,
		&project.CreatedAt,
		&project.UpdatedAt,
		pq.Array(&employees),
	); err != nil {
		return err
	}
	project.EmployeeIDs = employees
	return nil
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, company_id, project_id, name, description, assigned_to, status, completion_date, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	const query = `
INSERT INTO tasks (
	company_id,
	project_id,
	name,
	description,
	assigned_to,
	status
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + taskColumns

	var created domain.Task
	if err := scanTask(r.db.QueryRowContext(
		ctx,
		query,
		task.CompanyID,
		task.ProjectID,
		task.Name,
		task.Description,
		nullString(task.AssignedTo),
		task.Status,
	), &created); err != nil {
		logger.Error("task repository create failed", err, logger.Fields{
			"projectId": task.ProjectID,
		})
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	logger.Info("task repository create success", logger.Fields{
		"taskId":    created.ID,
		"projectId": created.ProjectID,
	})
	return created, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, companyID string, id string) (domain.Task, error) {
	const query = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
  AND company_id = $2`

	var task domain.Task
	if err := scanTask(r.db.QueryRowContext(ctx, query, id, companyID), &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrRecordNotFound
		}
		logger.Error("task repository get by id failed", err, logger.Fields{
			"taskId": id,
		})
		return domain.Task{}, fmt.Errorf("get task by id: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	const query = `
UPDATE tasks
SET name = $3,
    description = $4,
    assigned_to = $5,
    status = $6,
    completion_date = $7,
    updated_at = NOW()
WHERE id = $1
  AND company_id = $2
RETURNING ` + taskColumns

	var completion sql.NullTime
	if task.CompletionDate != nil {
		completion = sql.NullTime{Time: *task.CompletionDate, Valid: true}
	}

	var updated domain.Task
	if err := scanTask(r.db.QueryRowContext(
		ctx,
		query,
		task.ID,
		task.CompanyID,
		task.Name,
		task.Description,
		nullString(task.AssignedTo),
		task.Status,
		completion,
	), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrRecordNotFound
		}
		logger.Error("task repository update failed", err, logger.Fields{
			"taskId": task.ID,
		})
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, companyID string, id string) error {
	const query = `
DELETE FROM tasks
WHERE id = $1
  AND company_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		logger.Error("task repository delete failed", err, logger.Fields{
			"taskId": id,
		})
		return fmt.Errorf("delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func scanTask(row rowScanner, task *domain.Task) error {
	var (
		assignedTo sql.NullString
		completion sql.NullTime
	)
	if err := row.Scan(
		&task.ID,
		&task.CompanyID,
		&task.ProjectID,
		&task.Name,
		&task.Description,
		&assignedTo,
		&task.Status,
		&completion,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return err
	}
	task.AssignedTo = stringPtr(assignedTo)
	task.CompletionDate = timePtr(completion)
	return nil
}
