package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/middleware"
	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

type AuthController struct {
	service      service_interfaces.AuthService
	cookieSecure bool
}

func NewAuthController(service service_interfaces.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{service: service, cookieSecure: cookieSecure}
}

// RegisterRoutes mounts the public auth endpoints; authMiddleware is unused.
func (c *AuthController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.HandleFunc("/auth/login", c.login)
	mux.HandleFunc("/auth/logout", c.logout)
	mux.HandleFunc("/auth/signup", c.signup)
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed[models.LoginResponse](w)
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	response, err := c.service.Login(r.Context(), req)
	if err == nil && response.Data != nil {
		http.SetCookie(w, c.tokenCookie(response.Data.Token, int(c.service.TokenTTL().Seconds())))
	}
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response, start)
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed[struct{}](w)
		return
	}
	logRequest(r, nil)

	http.SetCookie(w, c.tokenCookie("", -1))
	response := commons.SuccessResponse("logged out successfully", struct{}{})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AuthController) signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed[models.SignupResponse](w)
		return
	}

	var req models.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	response, err := c.service.Signup(r.Context(), req)
	status := writeResult(w, r, http.StatusCreated, response, err)
	logResponse(r, status, response, start)
}

// tokenCookie builds the session cookie; a negative maxAge expires it.
func (c *AuthController) tokenCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
