package update_service

import "github.com/m04kA/SMC-SalonService/internal/domain"

// UpdateServiceRequest HTTP request model
// Отсутствующие поля остаются без изменений
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int    `json:"price,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
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

// ToPatch конвертирует HTTP запрос в patch доменной модели
func (r *UpdateServiceRequest) ToPatch() domain.ServicePatch {
	return domain.ServicePatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		IsActive:    r.IsActive,
	}
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		Duration:    svc.Duration,
		IsActive:    svc.IsActive,
	}
}
