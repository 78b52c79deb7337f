package models

import (
	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type PersonRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func NewPersonRef(user domain.User) PersonRef {
	return PersonRef{ID: user.ID, Name: user.Name, Email: user.Email}
}

type ProfileResponse struct {
	UserSummary
	IsApproved bool    `json:"isApproved"`
	LastLogin  *string `json:"lastLogin,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

func NewProfileResponse(user domain.User) ProfileResponse {
	return ProfileResponse{
		UserSummary: NewUserSummary(user),
		IsApproved:  user.IsApproved,
		LastLogin:   FormatTimePtr(user.LastLogin),
		CreatedAt:   FormatTime(user.CreatedAt),
	}
}

type CompanyUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TeamMemberResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"isActive"`
	IsApproved *bool      `json:"isApproved"`
	IsRejected *bool      `json:"isRejected"`
	ApprovedBy *PersonRef `json:"approvedBy"`
	ApprovedAt *string    `json:"approvedAt"`
	RejectedBy *PersonRef `json:"rejectedBy"`
	RejectedAt *string    `json:"rejectedAt"`
	LastLogin  *string    `json:"lastLogin"`
	CreatedAt  string     `json:"createdAt"`
}

type TeamResponse struct {
	TeamMembers     []TeamMemberResponse `json:"teamMembers"`
	CurrentUserRole string               `json:"currentUserRole"`
}
