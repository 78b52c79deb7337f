package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID            string
	CompanyID     string
	Name          string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	ClientName    string
	ProjectHeadID string
	EmployeeIDs   []string
	TotalRevenue  decimal.Decimal
	Cost          decimal.Decimal
	IsArchived    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Involves reports whether the user heads or works on the project.
func (p Project) Involves(userID string) bool {
	if p.ProjectHeadID == userID {
		return true
	}
	for _, id := range p.EmployeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskStatusToDo || s == TaskStatusInProgress || s == TaskStatusDone
}

type Task struct {
	ID             string
	CompanyID      string
	ProjectID      string
	Name           string
	Description    string
	AssignedTo     *string
	Status         TaskStatus
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SetStatus applies a status change and keeps CompletionDate consistent with it.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if status == TaskStatusDone {
		done := now
		t.CompletionDate = &done
		return
	}
	t.CompletionDate = nil
}
