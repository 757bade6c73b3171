package get_appointments

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentResponse HTTP response model записи с данными клиента и услуги
type AppointmentResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	Client  ClientInfo  `json:"client"`
	Service ServiceInfo `json:"service"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ClientInfo данные клиента в составе записи
type ClientInfo struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// ServiceInfo данные услуги в составе записи
type ServiceInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Duration int    `json:"duration"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(a *domain.AppointmentDetails) *AppointmentResponse {
	return &AppointmentResponse{
		ID:     a.ID,
		Date:   a.Date.Format(domain.DateFormat),
		Time:   a.Time.String(),
		Status: string(a.Status),
		Notes:  a.Notes,
		Client: ClientInfo{
			ID:       a.Client.ID,
			FullName: a.Client.FullName,
			Phone:    a.Client.Phone,
		},
		Service: ServiceInfo{
			ID:       a.Service.ID,
			Name:     a.Service.Name,
			Price:    a.Service.Price,
			Duration: a.Service.Duration,
		},
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainList конвертирует список доменных моделей
func FromDomainList(appointments []*domain.AppointmentDetails) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, FromDomain(a))
	}
	return result
}
