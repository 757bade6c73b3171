package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetActive(ctx context.Context) ([]*domain.Service, error)
	GetAll(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, id int64, patch domain.ServicePatch) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
}

// Cache интерфейс кеша каталога услуг
// Инжектируется снаружи, чтобы в multi-process деплое можно было подменить
// процессный кеш на разделяемый, не трогая бизнес-логику
type Cache interface {
	Get() (active, all []*domain.Service, ok bool)
	Set(active, all []*domain.Service)
	Invalidate()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
