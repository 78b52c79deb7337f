package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledgerdesk/src/internal/auth"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.AuthService = (*AuthService)(nil)

const (
	LoginStatusPending  = "pending"
	LoginStatusRejected = "rejected"
)

type AuthService struct {
	userRepo    repo_interfaces.UserRepository
	companyRepo repo_interfaces.CompanyRepository
	tokens      *auth.TokenIssuer
	now         func() time.Time
}

func NewAuthService(
	userRepo repo_interfaces.UserRepository,
	companyRepo repo_interfaces.CompanyRepository,
	tokens *auth.TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
		now:         time.Now,
	}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	req.Normalize()
	if err := req.Validate(); err != nil {
		return commons.FailureResponse[models.LoginResponse]("validation failed", err), err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.FailureResponse[models.LoginResponse]("login failed", domain.ErrInvalidCredentials), domain.ErrInvalidCredentials
		}
		logger.Error("auth service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("login failed", "Unable to log in right now"), err
	}

	if !user.IsActive || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		logger.Info("auth service login rejected", logger.Fields{
			"userId": user.ID,
		})
		return commons.FailureResponse[models.LoginResponse]("login failed", domain.ErrInvalidCredentials), domain.ErrInvalidCredentials
	}
	if user.IsRejected {
		return commons.ErrorResponse[models.LoginResponse](domain.ErrAccountRejected.Error(), LoginStatusRejected), domain.ErrAccountRejected
	}
	if !user.IsApproved {
		return commons.ErrorResponse[models.LoginResponse](domain.ErrPendingApproval.Error(), LoginStatusPending), domain.ErrPendingApproval
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		logger.Error("auth service issue token failed", err, logger.Fields{
			"userId": user.ID,
		})
		return commons.ErrorResponse[models.LoginResponse]("login failed", "Unable to log in right now"), err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		logger.Warn("auth service update last login failed", logger.Fields{
			"userId": user.ID,
			"error":  err.Error(),
		})
	}

	logger.Info("auth service login success", logger.Fields{
		"userId":    user.ID,
		"companyId": user.CompanyIDValue(),
	})
	return commons.SuccessResponse("login successful", models.LoginResponse{
		User:      models.NewUserSummary(user),
		Token:     token,
		ExpiresAt: models.FormatTime(expiresAt),
	}), nil
}

// Signup registers either the owner of a new company or a pending employee of
// an existing one.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (commons.Response[models.SignupResponse], error) {
	logger.Info("auth service signup request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	req.Normalize()
	if err := req.Validate(); err != nil {
		return commons.FailureResponse[models.SignupResponse]("validation failed", err), err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return commons.FailureResponse[models.SignupResponse]("signup failed", domain.ErrDuplicateEmail), domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("auth service signup lookup failed", err, nil)
		return commons.ErrorResponse[models.SignupResponse]("signup failed", "Unable to sign up right now"), err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("auth service hash password failed", err, nil)
		return commons.ErrorResponse[models.SignupResponse]("signup failed", "Unable to sign up right now"), err
	}

	user := domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if req.CompanyName != "" {
		company, err := s.companyRepo.Create(ctx, domain.Company{Name: req.CompanyName})
		if err != nil {
			logger.Error("auth service create company failed", err, nil)
			return commons.ErrorResponse[models.SignupResponse]("signup failed", "Unable to sign up right now"), err
		}
		user.CompanyID = &company.ID
		user.Role = domain.RoleOwner
		user.IsApproved = true
	} else {
		companyID, err := s.existingCompany(ctx, req.CompanyID)
		if err != nil {
			return commons.FailureResponse[models.SignupResponse]("signup failed", err), err
		}
		user.CompanyID = &companyID
		user.Role = domain.RoleEmployee
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return commons.FailureResponse[models.SignupResponse]("signup failed", err), err
		}
		logger.Error("auth service create user failed", err, nil)
		return commons.ErrorResponse[models.SignupResponse]("signup failed", "Unable to sign up right now"), err
	}

	logger.Info("auth service signup success", logger.Fields{
		"userId":    created.ID,
		"companyId": created.CompanyIDValue(),
		"role":      created.Role,
	})

	message := "signup successful"
	if created.Pending() {
		message = "signup successful, awaiting approval by an administrator"
	}
	return commons.SuccessResponse(message, models.SignupResponse{
		User:    models.NewUserSummary(created),
		Pending: created.Pending(),
	}), nil
}

func (s *AuthService) existingCompany(ctx context.Context, id string) (string, error) {
	notFound := domain.InvalidField("companyId", "companyId does not match an existing company")
	if _, err := uuid.Parse(id); err != nil {
		return "", notFound
	}
	company, err := s.companyRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return "", notFound
	}
	if err != nil {
		return "", fmt.Errorf("get company: %w", err)
	}
	return company.ID, nil
}

// ResolvePrincipal verifies the token and rebuilds the caller from the stored
// user, so role and company changes apply without a new login.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		logger.Debug("auth service token rejected", logger.Fields{
			"reason": err.Error(),
		})
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Principal{}, domain.ErrUnauthenticated
		}
		return domain.Principal{}, fmt.Errorf("load principal: %w", err)
	}
	if !user.IsActive || user.IsRejected {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	return user.Principal(), nil
}
