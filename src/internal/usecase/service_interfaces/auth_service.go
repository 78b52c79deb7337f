package service_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
	Signup(ctx context.Context, req models.SignupRequest) (commons.Response[models.SignupResponse], error)
	ResolvePrincipal(ctx context.Context, token string) (domain.Principal, error)
	TokenTTL() time.Duration
}

type TeamService interface {
	GetProfile(ctx context.Context, principal domain.Principal) (commons.Response[models.ProfileResponse], error)
	ListCompanyUsers(ctx context.Context, principal domain.Principal) (commons.Response[[]models.CompanyUserResponse], error)
	GetTeam(ctx context.Context, principal domain.Principal) (commons.Response[models.TeamResponse], error)
	ApproveMember(ctx context.Context, principal domain.Principal, userID string) (commons.Response[models.TeamMemberResponse], error)
	RejectMember(ctx context.Context, principal domain.Principal, userID string) (commons.Response[models.TeamMemberResponse], error)
}
