package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

type CategoryController struct {
	service service_interfaces.CategoryService
}

func NewCategoryController(service service_interfaces.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (c *CategoryController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/categories", protect(c.getCategories, authMiddleware))
}

func (c *CategoryController) getCategories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed[[]models.CategoryResponse](w)
		return
	}
	logRequest(r, nil)

	response, err := c.service.GetCategories(r.Context())
	status := writeResult(w, r, http.StatusOK, response, err)
	logResponse(r, status, response, start)
}
