package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	clientsService "github.com/m04kA/SMC-SalonService/internal/service/clients"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	clients         ClientService
	txManager       TransactionManager
	template        []types.TimeString
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	clients ClientService,
	txManager TransactionManager,
	template []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		clients:         clients,
		txManager:       txManager,
		template:        template,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// частичный уникальный индекс в БД страхует от гонки между инстансами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: phone=%s, service=%d, date=%s, time=%s",
		req.ClientPhone, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.template); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Находим или создаем клиента по телефону
	client, err := uc.clients.FindOrCreate(ctx, req.ClientName, req.ClientPhone)
	if err != nil {
		if errors.Is(err, clientsService.ErrInvalidPhone) {
			uc.logger.Warn("CreateAppointment: invalid phone %s", req.ClientPhone)
			return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
		}
		if errors.Is(err, clientsService.ErrInvalidInput) {
			uc.logger.Warn("CreateAppointment: invalid client data: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateAppointment: failed to resolve client: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 4. Проверяем занятость и создаем запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем записи на эту дату с блокировкой строк
		existing, err := uc.appointmentRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments for date %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.2. Слот занят любой активной записью, независимо от услуги
		for _, appt := range existing {
			if appt.IsActive() && appt.Time == req.Time {
				uc.logger.Warn("CreateAppointment: slot %s %s already taken by appointment id=%d",
					req.Date.Format(domain.DateFormat), req.Time, appt.ID)
				return ErrSlotTaken
			}
		}

		// 4.3. Создаем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:  client.ID,
			ServiceID: service.ID,
			Date:      req.Date,
			Time:      req.Time,
			Status:    domain.StatusScheduled,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d for client id=%d",
		result.ID, client.ID)

	return &Response{
		ID:           result.ID,
		ClientID:     client.ID,
		ServiceID:    service.ID,
		Date:         result.Date,
		Time:         result.Time,
		Status:       string(result.Status),
		ClientName:   client.FullName,
		ClientPhone:  client.Phone,
		ServiceName:  service.Name,
		ServicePrice: service.Price,
		Duration:     service.Duration,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
