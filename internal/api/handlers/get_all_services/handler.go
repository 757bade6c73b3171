package get_all_services

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Duration    int    `json:"duration"`
	IsActive    bool   `json:"isActive"`
}

// Handle GET /api/v1/admin/services
// Возвращает все услуги, включая скрытые из каталога
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/services - Failed to get services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := make([]*ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, fromDomain(svc))
	}

	h.logger.Info("GET /admin/services - Retrieved %d services", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func fromDomain(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		Duration:    svc.Duration,
		IsActive:    svc.IsActive,
	}
}
