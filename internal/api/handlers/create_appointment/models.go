package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"clientId"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice int     `json:"servicePrice"`
	Duration     int     `json:"duration"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	appointmentTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ServiceID:   r.ServiceID,
		Date:        date,
		Time:        appointmentTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		Time:         resp.Time.String(),
		Status:       resp.Status,
		ClientName:   resp.ClientName,
		ClientPhone:  resp.ClientPhone,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Duration:     resp.Duration,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
