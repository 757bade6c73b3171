package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case для получения свободного времени для записи
// Сетка времени задается при создании и не меняется в рантайме
type UseCase struct {
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository
	template        []types.TimeString
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	template []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		template:        template,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободного времени
// Слот занят, если на эту дату и время есть неотменённая запись на ЛЮБУЮ услугу:
// мастер один, записи на разные услуги конкурируют за одну сетку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование услуги
	// Несуществующая услуга не ошибка: клиенту отдается пустой список
	if _, err := uc.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found, returning empty list", req.ServiceID)
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Получаем записи на дату
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for date %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Вычитаем занятое время из сетки
	available := filterAvailable(uc.template, appointments)

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, available=%d of %d",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(available), len(uc.template))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     available,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []types.TimeString{},
	}
}
