package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

const teamPrefix = "/user/team/"

type UserController struct {
	service service_interfaces.TeamService
}

func NewUserController(service service_interfaces.TeamService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/user/profile", protect(c.getProfile, authMiddleware))
	mux.Handle("/users", protect(c.listUsers, authMiddleware))
	mux.Handle("/user/team", protect(c.getTeam, authMiddleware))
	mux.Handle(teamPrefix, protect(c.decide, authMiddleware))
}

func (c *UserController) getProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed[models.ProfileResponse](w)
		return
	}
	logRequest(r, nil)

	response, err := c.service.GetProfile(r.Context(), principalFrom(r))
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response, start)
}

func (c *UserController) listUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed[[]models.CompanyUserResponse](w)
		return
	}
	logRequest(r, nil)

	response, err := c.service.ListCompanyUsers(r.Context(), principalFrom(r))
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response.Message, start)
}

func (c *UserController) getTeam(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed[models.TeamResponse](w)
		return
	}
	logRequest(r, nil)

	response, err := c.service.GetTeam(r.Context(), principalFrom(r))
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response.Message, start)
}

// decide handles POST /user/team/{id}/approve and POST /user/team/{id}/reject.
func (c *UserController) decide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rest := strings.TrimPrefix(r.URL.Path, teamPrefix)
	userID, action, ok := strings.Cut(rest, "/")
	if !ok || userID == "" || (action != "approve" && action != "reject") {
		writeJSON(w, http.StatusNotFound, commons.ErrorResponse[models.TeamMemberResponse]("route not found"))
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed[models.TeamMemberResponse](w)
		return
	}
	logRequest(r, map[string]string{"userId": userID, "action": action})

	var (
		response commons.Response[models.TeamMemberResponse]
		err      error
	)
	if action == "approve" {
		response, err = c.service.ApproveMember(r.Context(), principalFrom(r), userID)
	} else {
		response, err = c.service.RejectMember(r.Context(), principalFrom(r), userID)
	}
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response, start)
}
