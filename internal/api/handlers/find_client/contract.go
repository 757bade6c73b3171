package find_client

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type ClientService interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Client, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
