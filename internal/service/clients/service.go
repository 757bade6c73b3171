package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/client"
)

// Service сервис для работы с клиентами салона
type Service struct {
	repo   ClientRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(repo ClientRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// FindOrCreate ищет клиента по телефону и создает нового, если не найден
// Телефон - ключ дедупликации: повторное бронирование с тем же номером
// возвращает существующего клиента вместо дубля
func (s *Service) FindOrCreate(ctx context.Context, fullName, phone string) (*domain.Client, error) {
	if err := validateFullName(fullName); err != nil {
		s.logger.Warn("FindOrCreate: name validation failed: %v", err)
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		s.logger.Warn("FindOrCreate: phone validation failed: %v", err)
		return nil, err
	}

	existing, err := s.repo.GetByPhone(ctx, phone)
	if err == nil {
		s.logger.Info("FindOrCreate: existing client id=%d matched by phone", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("FindOrCreate: repository error on phone lookup: %v", err)
		return nil, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
	}

	created, err := s.repo.Create(ctx, &domain.Client{
		FullName: fullName,
		Phone:    phone,
	})
	if err != nil {
		s.logger.Error("FindOrCreate: failed to create client: %v", err)
		return nil, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("FindOrCreate: client created id=%d", created.ID)
	return created, nil
}

// GetByPhone возвращает клиента по номеру телефона
func (s *Service) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	client, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByPhone - repository error: %v", ErrInternal, err)
	}
	return client, nil
}

// Update применяет частичное обновление клиента
func (s *Service) Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	if patch.FullName != nil {
		if err := validateFullName(*patch.FullName); err != nil {
			return nil, err
		}
	}
	if patch.Phone != nil {
		if err := validatePhone(*patch.Phone); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Update: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Update: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: client updated id=%d", id)
	return updated, nil
}
