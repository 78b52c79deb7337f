package models

import (
	"strings"
	"unicode/utf8"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/gookit/validate"
)

type CreateTaskRequest struct {
	Name        string `json:"name" validate:"required|max_len:200"`
	Project     string `json:"project" validate:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
}

func (r CreateTaskRequest) Messages() map[string]string {
	return validate.MS{"required": "{field} is required"}
}

func (r CreateTaskRequest) Translates() map[string]string {
	return validate.MS{"Name": "name", "Project": "project"}
}

func (r *CreateTaskRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Project = strings.TrimSpace(r.Project)
	r.Description = strings.TrimSpace(r.Description)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
}

func (r CreateTaskRequest) Validate() error {
	v := domain.NewValidationError()
	checkStruct(&r, v)
	return v.OrNil()
}

const maxTaskNameLength = 200

type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assignedTo"`
	Status      *string `json:"status"`
}

func (r UpdateTaskRequest) Validate() error {
	v := domain.NewValidationError()
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			v.Add("name", "name cannot be empty")
		} else if utf8.RuneCountInString(name) > maxTaskNameLength {
			v.Add("name", "name max length is 200")
		}
	}
	if r.Status != nil && !domain.TaskStatus(*r.Status).Valid() {
		v.Add("status", "status must be one of To Do, In Progress, Done")
	}
	return v.OrNil()
}

type TaskResponse struct {
	ID             string  `json:"id"`
	ProjectID      string  `json:"projectId"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	AssignedTo     *string `json:"assignedTo"`
	Status         string  `json:"status"`
	CompletionDate *string `json:"completionDate"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func NewTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		Name:           task.Name,
		Description:    task.Description,
		AssignedTo:     task.AssignedTo,
		Status:         string(task.Status),
		CompletionDate: FormatTimePtr(task.CompletionDate),
		CreatedAt:      FormatTime(task.CreatedAt),
		UpdatedAt:      FormatTime(task.UpdatedAt),
	}
}
