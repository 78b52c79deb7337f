package services

import (
	"context"
	"errors"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.TeamService = (*TeamService)(nil)

type TeamService struct {
	userRepo repo_interfaces.UserRepository
	now      func() time.Time
}

func NewTeamService(userRepo repo_interfaces.UserRepository) *TeamService {
	return &TeamService{userRepo: userRepo, now: time.Now}
}

func (s *TeamService) GetProfile(ctx context.Context, principal domain.Principal) (commons.Response[models.ProfileResponse], error) {
	logger.Info("team service get profile request", logger.Fields{
		"userId": principal.ID,
	})

	if principal.ID == "" {
		return commons.FailureResponse[models.ProfileResponse]("failed to fetch profile", domain.ErrUnauthenticated), domain.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.FailureResponse[models.ProfileResponse]("failed to fetch profile", err), err
		}
		logger.Error("team service get profile failed", err, logger.Fields{
			"userId": principal.ID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to fetch profile", "Unable to fetch profile right now"), err
	}

	return commons.SuccessResponse("profile fetched successfully", models.NewProfileResponse(user)), nil
}

func (s *TeamService) ListCompanyUsers(ctx context.Context, principal domain.Principal) (commons.Response[[]models.CompanyUserResponse], error) {
	logger.Info("team service list company users request", logger.Fields{
		"companyId": principal.CompanyID,
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[[]models.CompanyUserResponse]("failed to fetch users", err), err
	}

	users, err := s.userRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("team service list company users failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[[]models.CompanyUserResponse]("failed to fetch users", "Unable to fetch users right now"), err
	}

	out := make([]models.CompanyUserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, models.CompanyUserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		})
	}
	return commons.SuccessResponse("users fetched successfully", out), nil
}

// GetTeam lists every member of the caller's company, newest first. Approval
// details are only shown to admins and owners.
func (s *TeamService) GetTeam(ctx context.Context, principal domain.Principal) (commons.Response[models.TeamResponse], error) {
	logger.Info("team service get team request", logger.Fields{
		"userId":    principal.ID,
		"companyId": principal.CompanyID,
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.TeamResponse]("failed to fetch team", err), err
	}
	if !principal.Role.Valid() {
		return commons.FailureResponse[models.TeamResponse]("failed to fetch team", domain.ErrForbidden), domain.ErrForbidden
	}

	users, err := s.userRepo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		logger.Error("team service get team failed", err, logger.Fields{
			"companyId": principal.CompanyID,
		})
		return commons.ErrorResponse[models.TeamResponse]("failed to fetch team", "Unable to fetch team right now"), err
	}

	people := make(map[string]domain.User, len(users))
	for _, user := range users {
		people[user.ID] = user
	}

	members := make([]models.TeamMemberResponse, 0, len(users))
	for _, user := range users {
		members = append(members, newTeamMember(user, people, !principal.IsManager()))
	}

	return commons.SuccessResponse("team fetched successfully", models.TeamResponse{
		TeamMembers:     members,
		CurrentUserRole: string(principal.Role),
	}), nil
}

func (s *TeamService) ApproveMember(ctx context.Context, principal domain.Principal, userID string) (commons.Response[models.TeamMemberResponse], error) {
	return s.decide(ctx, principal, userID, true)
}

func (s *TeamService) RejectMember(ctx context.Context, principal domain.Principal, userID string) (commons.Response[models.TeamMemberResponse], error) {
	return s.decide(ctx, principal, userID, false)
}

func (s *TeamService) decide(ctx context.Context, principal domain.Principal, userID string, approved bool) (commons.Response[models.TeamMemberResponse], error) {
	logger.Info("team service approval decision request", logger.Fields{
		"actorId":  principal.ID,
		"userId":   userID,
		"approved": approved,
	})

	if err := principal.RequireCompany(); err != nil {
		return commons.FailureResponse[models.TeamMemberResponse]("failed to update member", err), err
	}
	if !principal.IsManager() {
		return commons.FailureResponse[models.TeamMemberResponse]("failed to update member", domain.ErrForbidden), domain.ErrForbidden
	}
	if userID == principal.ID {
		err := domain.InvalidField("id", "you cannot change your own approval")
		return commons.FailureResponse[models.TeamMemberResponse]("validation failed", err), err
	}
	if _, err := uuid.Parse(userID); err != nil {
		return commons.FailureResponse[models.TeamMemberResponse]("failed to update member", domain.ErrRecordNotFound), domain.ErrRecordNotFound
	}

	updated, err := s.userRepo.SetApproval(ctx, principal.CompanyID, userID, approved, principal.ID, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.FailureResponse[models.TeamMemberResponse]("failed to update member", err), err
		}
		logger.Error("team service approval decision failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.TeamMemberResponse]("failed to update member", "Unable to update member right now"), err
	}

	actor := domain.User{ID: principal.ID, Name: principal.Name, Email: principal.Email}
	message := "member approved successfully"
	if !approved {
		message = "member rejected successfully"
	}

	logger.Info("team service approval decision success", logger.Fields{
		"userId":   updated.ID,
		"approved": approved,
	})
	return commons.SuccessResponse(message, newTeamMember(updated, map[string]domain.User{actor.ID: actor}, false)), nil
}

func newTeamMember(user domain.User, people map[string]domain.User, redact bool) models.TeamMemberResponse {
	member := models.TeamMemberResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: models.FormatTimePtr(user.LastLogin),
		CreatedAt: models.FormatTime(user.CreatedAt),
	}
	if redact {
		return member
	}

	approved, rejected := user.IsApproved, user.IsRejected
	member.IsApproved = &approved
	member.IsRejected = &rejected
	member.ApprovedBy = personRef(user.ApprovedBy, people)
	member.ApprovedAt = models.FormatTimePtr(user.ApprovedAt)
	member.RejectedBy = personRef(user.RejectedBy, people)
	member.RejectedAt = models.FormatTimePtr(user.RejectedAt)
	return member
}

func personRef(id *string, people map[string]domain.User) *models.PersonRef {
	if id == nil {
		return nil
	}
	ref := models.PersonRef{ID: *id}
	if person, ok := people[*id]; ok {
		ref = models.NewPersonRef(person)
	}
	return &ref
}
