package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
)

type CreateProjectRequest struct {
	Name         string          `json:"name" validate:"required|max_len:200"`
	Description  string          `json:"description" validate:"required"`
	StartDate    string          `json:"startDate" validate:"required"`
	EndDate      string          `json:"endDate" validate:"required"`
	ClientName   string          `json:"clientName" validate:"required|max_len:200"`
	ProjectHead  string          `json:"projectHead" validate:"required"`
	Employees    []string        `json:"employees"`
	TotalRevenue json.RawMessage `json:"totalRevenue"`
	Cost         json.RawMessage `json:"cost"`
}

func (r CreateProjectRequest) Messages() map[string]string {
	return validate.MS{"required": "{field} is required"}
}

func (r CreateProjectRequest) Translates() map[string]string {
	return validate.MS{
		"Name":        "name",
		"Description": "description",
		"StartDate":   "startDate",
		"EndDate":     "endDate",
		"ClientName":  "clientName",
		"ProjectHead": "projectHead",
	}
}

func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ProjectHead = strings.TrimSpace(r.ProjectHead)

	employees := make([]string, 0, len(r.Employees))
	seen := map[string]struct{}{}
	for _, id := range r.Employees {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		employees = append(employees, id)
	}
	r.Employees = employees
}

// ProjectInput carries the typed values of a validated project request.
type ProjectInput struct {
	StartDate    time.Time
	EndDate      time.Time
	TotalRevenue decimal.Decimal
	Cost         decimal.Decimal
}

func (r CreateProjectRequest) Validate() error {
	_, err := r.Parse()
	return err
}

func (r CreateProjectRequest) Parse() (ProjectInput, error) {
	v := domain.NewValidationError()
	checkStruct(&r, v)

	var input ProjectInput
	start, startErr := ParseDate(r.StartDate)
	if r.StartDate != "" && startErr != nil {
		v.Add("startDate", "startDate must be YYYY-MM-DD or an RFC 3339 timestamp")
	}
	end, endErr := ParseDate(r.EndDate)
	if r.EndDate != "" && endErr != nil {
		v.Add("endDate", "endDate must be YYYY-MM-DD or an RFC 3339 timestamp")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		v.Add("endDate", "endDate cannot be before startDate")
	}
	input.StartDate, input.EndDate = start, end

	if amount, ok := amountField(v, "totalRevenue", r.TotalRevenue, false); ok {
		if amount.IsNegative() {
			v.Add("totalRevenue", "totalRevenue cannot be negative")
		}
		input.TotalRevenue = amount
	}
	if amount, ok := amountField(v, "cost", r.Cost, false); ok {
		if amount.IsNegative() {
			v.Add("cost", "cost cannot be negative")
		}
		input.Cost = amount
	}

	if err := v.OrNil(); err != nil {
		return ProjectInput{}, err
	}
	return input, nil
}

type ProjectResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	ClientName   string      `json:"clientName"`
	ProjectHead  PersonRef   `json:"projectHead"`
	Employees    []PersonRef `json:"employees"`
	TotalRevenue json.Number `json:"totalRevenue"`
	Cost         json.Number `json:"cost"`
	IsArchived   bool        `json:"isArchived"`
	CreatedAt    string      `json:"createdAt"`
}

// NewProjectResponse resolves people through lookup; unknown ids keep only their id.
func NewProjectResponse(project domain.Project, lookup func(id string) PersonRef) ProjectResponse {
	employees := make([]PersonRef, 0, len(project.EmployeeIDs))
	for _, id := range project.EmployeeIDs {
		employees = append(employees, lookup(id))
	}

	return ProjectResponse{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		StartDate:    FormatTime(project.StartDate),
		EndDate:      FormatTime(project.EndDate),
		ClientName:   project.ClientName,
		ProjectHead:  lookup(project.ProjectHeadID),
		Employees:    employees,
		TotalRevenue: Money(project.TotalRevenue),
		Cost:         Money(project.Cost),
		IsArchived:   project.IsArchived,
		CreatedAt:    FormatTime(project.CreatedAt),
	}
}
