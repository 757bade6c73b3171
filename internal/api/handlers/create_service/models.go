package create_service

import "github.com/m04kA/SMC-SalonService/internal/domain"

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`    // в центах
	Duration    int    `json:"duration"` // в минутах
	IsActive    *bool  `json:"isActive,omitempty"`
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

// ToDomain конвертирует HTTP запрос в доменную модель
// Новая услуга по умолчанию видна в каталоге
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &domain.Service{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		IsActive:    isActive,
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
