package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// Service сервис жизненного цикла записей: статусы, отмена, удаление
// Создание записи вынесено в отдельный usecase, потому что оно требует
// транзакционной проверки занятости слота
type Service struct {
	repo   AppointmentRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID возвращает запись вместе с клиентом и услугой
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	details, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return details, nil
}

// List возвращает последние записи, свежие сверху (выдача ограничена хранилищем)
func (s *Service) List(ctx context.Context) ([]*domain.AppointmentDetails, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("List: fetched %d appointments", len(appointments))
	return appointments, nil
}

// GetByDate возвращает записи на конкретную дату по возрастанию времени
func (s *Service) GetByDate(ctx context.Context, date time.Time) ([]*domain.AppointmentDetails, error) {
	appointments, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}
	return appointments, nil
}

// UpdateStatus переводит запись в новый статус с проверкой машины состояний
// и возвращает обновлённую запись вместе с клиентом и услугой
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.AppointmentDetails, error) {
	newStatus, ok := domain.ParseStatus(status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", status, id)
		return nil, ErrInvalidStatus
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == newStatus {
		// Переход в тот же статус - no-op
		return current, nil
	}

	if !current.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for appointment id=%d",
			current.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	updated, err := s.repo.Update(ctx, id, domain.AppointmentPatch{Status: &newStatus})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved %s -> %s", id, current.Status, newStatus)
	return updated, nil
}

// Cancel переводит запись в cancelled, освобождая её слот для новых бронирований
// Повторная отмена уже отменённой записи - no-op: доступность слотов не меняется
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: appointment id=%d already cancelled", id)
		return current, nil
	}

	if !current.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: appointment id=%d in terminal status %s", id, current.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, domain.StatusCancelled)
	}

	updated, err := s.repo.Update(ctx, id, domain.AppointmentPatch{
		Status: ptr.Ptr(domain.StatusCancelled),
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled, slot %s %s freed",
		id, updated.Date.Format(domain.DateFormat), updated.Time)
	return updated, nil
}

// Delete физически удаляет запись (только для админки)
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d removed", id)
	return nil
}
