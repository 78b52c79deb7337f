package models

import (
	"strings"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/gookit/validate"
)

const minPasswordLength = 8

type LoginRequest struct {
	Email    string `json:"email" validate:"required|email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Messages() map[string]string {
	return validate.MS{
		"required":    "{field} is required",
		"Email.email": "email must be a valid email address",
	}
}

func (r LoginRequest) Translates() map[string]string {
	return validate.MS{"Email": "email", "Password": "password"}
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	v := domain.NewValidationError()
	checkStruct(&r, v)
	return v.OrNil()
}

type SignupRequest struct {
	Name        string `json:"name" validate:"required|max_len:200"`
	Email       string `json:"email" validate:"required|email|max_len:320"`
	Password    string `json:"password" validate:"required"`
	CompanyName string `json:"companyName" validate:"max_len:200"`
	CompanyID   string `json:"companyId"`
}

func (r SignupRequest) Messages() map[string]string {
	return validate.MS{
		"required":    "{field} is required",
		"Email.email": "email must be a valid email address",
	}
}

func (r SignupRequest) Translates() map[string]string {
	return validate.MS{"Name": "name", "Email": "email", "Password": "password", "CompanyName": "companyName"}
}

func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.CompanyID = strings.TrimSpace(r.CompanyID)
}

func (r SignupRequest) Validate() error {
	v := domain.NewValidationError()
	checkStruct(&r, v)

	if r.Password != "" && len(r.Password) < minPasswordLength {
		v.Add("password", "password must be at least 8 characters")
	}
	if r.CompanyName == "" && r.CompanyID == "" {
		v.Add("company", "companyName or companyId is required")
	}
	if r.CompanyName != "" && r.CompanyID != "" {
		v.Add("company", "provide either companyName or companyId, not both")
	}
	return v.OrNil()
}

type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

func NewUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CompanyID: user.CompanyIDValue(),
	}
}

type LoginResponse struct {
	User      UserSummary `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expiresAt"`
}

type SignupResponse struct {
	User    UserSummary `json:"user"`
	Pending bool        `json:"pending"`
}
