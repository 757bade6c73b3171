package get_appointments_by_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type AppointmentService interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.AppointmentDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
