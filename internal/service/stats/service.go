package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ErrInvalidPeriod возвращается, когда начало периода позже конца
var ErrInvalidPeriod = errors.New("invalid period: from is after to")

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("stats service: internal error")

// Summary сводка для панели администратора
// Выручка считается только по завершённым записям, в центах
type Summary struct {
	TodayAppointments int
	WeekAppointments  int
	PendingCount      int
	TodayRevenue      int
}

// PeriodRevenue выручка и количество записей за произвольный период
type PeriodRevenue struct {
	From         time.Time
	To           time.Time
	Appointments int
	Completed    int
	Revenue      int
}

// Service сервис статистики записей
type Service struct {
	repo         AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSummary возвращает сводку на сегодняшний день:
// записи на сегодня и за неделю (без отменённых), количество
// неподтверждённых (scheduled) и выручка по завершённым за сегодня
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	now := s.timeProvider.Now()
	today := dateOnly(now)
	weekStart := today.AddDate(0, 0, -int(now.Weekday()))

	appointments, err := s.repo.GetByDateRange(ctx, weekStart, today)
	if err != nil {
		s.logger.Error("GetSummary: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSummary - repository error: %v", ErrInternal, err)
	}

	summary := &Summary{}
	for _, appt := range appointments {
		isToday := dateOnly(appt.Date).Equal(today)

		if appt.IsActive() {
			summary.WeekAppointments++
			if isToday {
				summary.TodayAppointments++
			}
		}

		if appt.Status == domain.StatusScheduled {
			summary.PendingCount++
		}

		if isToday && appt.Status == domain.StatusCompleted {
			summary.TodayRevenue += appt.Service.Price
		}
	}

	s.logger.Info("GetSummary: today=%d week=%d pending=%d revenue=%d",
		summary.TodayAppointments, summary.WeekAppointments, summary.PendingCount, summary.TodayRevenue)

	return summary, nil
}

// GetRevenue возвращает выручку по завершённым записям за период [from, to]
func (s *Service) GetRevenue(ctx context.Context, from, to time.Time) (*PeriodRevenue, error) {
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}

	appointments, err := s.repo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("GetRevenue: repository error for period %s..%s: %v",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetRevenue - repository error: %v", ErrInternal, err)
	}

	result := &PeriodRevenue{From: from, To: to}
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		result.Appointments++
		if appt.Status == domain.StatusCompleted {
			result.Completed++
			result.Revenue += appt.Service.Price
		}
	}

	s.logger.Info("GetRevenue: period %s..%s appointments=%d completed=%d revenue=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat),
		result.Appointments, result.Completed, result.Revenue)

	return result, nil
}

// dateOnly приводит момент к полуночи UTC его календарной даты
// Колонка DATE сканируется как полночь UTC, поэтому даты из БД и текущее
// время сервера должны сравниваться в одной зоне
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
