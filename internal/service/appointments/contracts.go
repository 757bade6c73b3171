package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	List(ctx context.Context) ([]*domain.AppointmentDetails, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.AppointmentDetails, error)
	Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (*domain.AppointmentDetails, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
