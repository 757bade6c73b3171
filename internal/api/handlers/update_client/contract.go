package update_client

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type ClientService interface {
	Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
