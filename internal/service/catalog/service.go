package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
)

// Service сервис каталога услуг салона
// Чтения идут через кеш с ограничением по TTL; любая мутация инвалидирует
// кеш безусловно, поэтому собственные изменения видны сразу
type Service struct {
	repo   ServiceRepository
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo ServiceRepository, cache Cache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetActive возвращает все активные услуги (публичный каталог)
func (s *Service) GetActive(ctx context.Context) ([]*domain.Service, error) {
	active, _, err := s.load(ctx)
	return active, err
}

// GetAll возвращает все услуги независимо от флага активности (админка)
func (s *Service) GetAll(ctx context.Context) ([]*domain.Service, error) {
	_, all, err := s.load(ctx)
	return all, err
}

// GetByID возвращает услугу по ID, читая через кеш
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	_, all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, svc := range all {
		if svc.ID == id {
			return svc, nil
		}
	}

	return nil, ErrServiceNotFound
}

// load отдает оба списка из кеша или перечитывает их из хранилища
func (s *Service) load(ctx context.Context) (active, all []*domain.Service, err error) {
	if active, all, ok := s.cache.Get(); ok {
		return active, all, nil
	}

	active, err = s.repo.GetActive(ctx)
	if err != nil {
		s.logger.Error("Catalog: failed to load active services: %v", err)
		return nil, nil, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}

	all, err = s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Catalog: failed to load all services: %v", err)
		return nil, nil, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(active, all)
	s.logger.Info("Catalog: cache refreshed, %d active / %d total services", len(active), len(all))

	return active, all, nil
}

// Create создает новую услугу и инвалидирует кеш
func (s *Service) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if err := validateService(svc); err != nil {
		s.logger.Warn("Catalog: create validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Catalog: failed to create service: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate()
	s.logger.Info("Catalog: service created id=%d name=%q", created.ID, created.Name)

	return created, nil
}

// Update применяет частичное обновление услуги и инвалидирует кеш
func (s *Service) Update(ctx context.Context, id int64, patch domain.ServicePatch) (*domain.Service, error) {
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Catalog: update validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Catalog: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Catalog: failed to update service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate()
	s.logger.Info("Catalog: service updated id=%d", id)

	return updated, nil
}

// Delete удаляет услугу и инвалидирует кеш
// Услуга с привязанными записями не удаляется - возвращается ErrServiceInUse
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			s.logger.Warn("Catalog: service id=%d not found", id)
			return ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrServiceInUse):
			s.logger.Warn("Catalog: service id=%d has appointments, delete rejected", id)
			return ErrServiceInUse
		default:
			s.logger.Error("Catalog: failed to delete service id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.cache.Invalidate()
	s.logger.Info("Catalog: service deleted id=%d", id)

	return nil
}

// validateService проверяет инварианты услуги: положительные цена и длительность
func validateService(svc *domain.Service) error {
	if len(svc.Name) < domain.MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}
	if svc.Price < domain.MinServicePrice {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if svc.Duration < domain.MinServiceDuration {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

// validatePatch проверяет изменяемые поля частичного обновления
func validatePatch(patch domain.ServicePatch) error {
	if patch.Name != nil && len(*patch.Name) < domain.MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}
	if patch.Price != nil && *patch.Price < domain.MinServicePrice {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if patch.Duration != nil && *patch.Duration < domain.MinServiceDuration {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}
