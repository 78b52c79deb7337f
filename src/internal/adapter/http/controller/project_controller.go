package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

const taskPrefix = "/tasks/"

type ProjectController struct {
	projects  service_interfaces.ProjectService
	tasks     service_interfaces.TaskService
	dashboard service_interfaces.DashboardService
}

func NewProjectController(
	projects service_interfaces.ProjectService,
	tasks service_interfaces.TaskService,
	dashboard service_interfaces.DashboardService,
) *ProjectController {
	return &ProjectController{projects: projects, tasks: tasks, dashboard: dashboard}
}

func (c *ProjectController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/projects", protect(c.projectsRoute, authMiddleware))
	mux.Handle("/tasks", protect(c.createTask, authMiddleware))
	mux.Handle(taskPrefix, protect(c.taskRoute, authMiddleware))
	mux.Handle("/dashboard/summary", protect(c.getSummary, authMiddleware))
}

func (c *ProjectController) projectsRoute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	switch r.Method {
	case http.MethodGet:
		logRequest(r, nil)
		response, err := c.projects.ListProjects(r.Context(), principalFrom(r))
		status := writeResult(w, r, http.StatusOK, response, err)
		logResponse(r, status, response.Message, start)
	case http.MethodPost:
		var req models.CreateProjectRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		logRequest(r, req)
		response, err := c.projects.CreateProject(r.Context(), principalFrom(r), req)
		status := writeResult(w, r, http.StatusCreated, response, err)
		logResponse(r, status, response, start)
	default:
		methodNotAllowed[models.ProjectResponse](w)
	}
}

func (c *ProjectController) createTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed[models.TaskResponse](w)
		return
	}

	var req models.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	response, err := c.tasks.CreateTask(r.Context(), principalFrom(r), req)
	status := writeResult(w, r, http.StatusCreated, response, err)
	logResponse(r, status, response, start)
}

// taskRoute handles PUT and DELETE /tasks/{id}.
func (c *ProjectController) taskRoute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	taskID, ok := pathParam(r.URL.Path, taskPrefix)
	if !ok {
		writeJSON(w, http.StatusNotFound, commons.ErrorResponse[models.TaskResponse]("route not found"))
		return
	}

	var (
		response commons.Response[models.TaskResponse]
		err      error
	)
	switch r.Method {
	case http.MethodPut:
		var req models.UpdateTaskRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		logRequest(r, req)
		response, err = c.tasks.UpdateTask(r.Context(), principalFrom(r), taskID, req)
	case http.MethodDelete:
		logRequest(r, nil)
		response, err = c.tasks.DeleteTask(r.Context(), principalFrom(r), taskID)
	default:
		methodNotAllowed[models.TaskResponse](w)
		return
	}

	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response, start)
}

func (c *ProjectController) getSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed[models.DashboardSummaryResponse](w)
		return
	}
	logRequest(r, nil)

	response, err := c.dashboard.GetSummary(r.Context(), principalFrom(r))
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response, start)
}
