package domain

import "time"

type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleEmployee
}

type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type User struct {
	ID           string
	CompanyID    *string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsApproved   bool
	IsRejected   bool
	ApprovedBy   *string
	ApprovedAt   *time.Time
	RejectedBy   *string
	RejectedAt   *time.Time
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Pending reports whether the user still awaits a decision from a manager.
func (u User) Pending() bool {
	return !u.IsApproved && !u.IsRejected
}

func (u User) CompanyIDValue() string {
	if u.CompanyID == nil {
		return ""
	}
	return *u.CompanyID
}

func (u User) Principal() Principal {
	return Principal{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CompanyID: u.CompanyIDValue(),
	}
}
