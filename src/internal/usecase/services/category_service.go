package services

import (
	"context"

	"github.com/api-sage/ledgerdesk/src/internal/adapter/http/models"
	"github.com/api-sage/ledgerdesk/src/internal/commons"
	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/logger"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.CategoryService = (*CategoryService)(nil)

type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

func (s *CategoryService) GetCategories(_ context.Context) (commons.Response[[]models.CategoryResponse], error) {
	logger.Info("category service get categories request", nil)

	categories := domain.Categories()
	resp := make([]models.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, models.CategoryResponse{
			Name:  category.Name,
			Color: category.Color,
		})
	}

	logger.Info("category service get categories success", logger.Fields{
		"count": len(resp),
	})
	return commons.SuccessResponse("categories fetched successfully", resp), nil
}
