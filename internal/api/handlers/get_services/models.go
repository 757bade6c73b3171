package get_services

import "github.com/m04kA/SMC-SalonService/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // в центах
	Duration    int    `json:"duration"` // в минутах
	IsActive    bool   `json:"isActive"`
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

// FromDomainList конвертирует список доменных моделей
func FromDomainList(services []*domain.Service) []*ServiceResponse {
	result := make([]*ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, FromDomain(svc))
	}
	return result
}
