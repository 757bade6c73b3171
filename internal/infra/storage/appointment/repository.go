package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// joinedColumns колонки записи вместе с клиентом и услугой
// Порядок должен совпадать со scanDetails
var joinedColumns = []string{
	"a.id",
	"a.client_id",
	"a.service_id",
	"a.date",
	"a.time",
	"a.status",
	"a.notes",
	"a.created_at",
	"a.updated_at",
	"c.id",
	"c.full_name",
	"c.phone",
	"c.created_at",
	"s.id",
	"s.name",
	"s.description",
	"s.price",
	"s.duration",
	"s.is_active",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Занятость слота дополнительно гарантируется частичным уникальным индексом
// на (date, time) для неотменённых записей: проигравший конкурентный insert
// получает ErrSlotTaken, а не тихий дубль
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"service_id",
			"date",
			"time",
			"status",
			"notes",
		).
		Values(
			appt.ClientID,
			appt.ServiceID,
			appt.Date,
			appt.Time,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID вместе с клиентом и услугой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.joinedSelect().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := r.scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return details, nil
}

// List получает записи вместе с клиентом и услугой, свежие сверху
// Выдача ограничена AppointmentsPageSize, чтобы не раздувать ответ админки
func (r *Repository) List(ctx context.Context) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.joinedSelect().
		OrderBy("a.date DESC, a.time DESC").
		Limit(domain.AppointmentsPageSize).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetailsRows(rows)
}

// GetByDate получает записи на конкретную дату, отсортированные по времени
// Внутри транзакции строки блокируются (FOR UPDATE OF a) - используется
// usecase создания записи для проверки занятости слота без гонки
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.joinedSelect().
		Where(squirrel.Eq{"a.date": date}).
		OrderBy("a.time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetailsRows(rows)
}

// GetByDateRange получает записи за период [from, to] включительно,
// по возрастанию даты и времени. Используется статистикой админки
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.joinedSelect().
		Where(squirrel.GtOrEq{"a.date": from}).
		Where(squirrel.LtOrEq{"a.date": to}).
		OrderBy("a.date ASC, a.time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetailsRows(rows)
}

// Update применяет частичное обновление записи (обычно только статус)
// и возвращает обновлённую запись вместе с клиентом и услугой
func (r *Repository) Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (*domain.AppointmentDetails, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Date != nil {
		updateBuilder = updateBuilder.Set("date", *patch.Date)
	}
	if patch.Time != nil {
		updateBuilder = updateBuilder.Set("time", *patch.Time)
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}
	if patch.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *patch.Notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет запись (физическое удаление, использовать осторожно)
// Для освобождения слота с сохранением истории предпочтительнее перевод
// статуса в cancelled
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) joinedSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(joinedColumns...).
		From("appointments a").
		Join("clients c ON c.id = a.client_id").
		Join("services s ON s.id = a.service_id")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanDetails(row rowScanner) (*domain.AppointmentDetails, error) {
	var d domain.AppointmentDetails
	var apptCreatedAt, apptUpdatedAt, clientCreatedAt sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.ClientID,
		&d.ServiceID,
		&d.Date,
		&d.Time,
		&d.Status,
		&d.Notes,
		&apptCreatedAt,
		&apptUpdatedAt,
		&d.Client.ID,
		&d.Client.FullName,
		&d.Client.Phone,
		&clientCreatedAt,
		&d.Service.ID,
		&d.Service.Name,
		&d.Service.Description,
		&d.Service.Price,
		&d.Service.Duration,
		&d.Service.IsActive,
	)
	if err != nil {
		return nil, err
	}

	d.CreatedAt = apptCreatedAt.Time
	d.UpdatedAt = apptUpdatedAt.Time
	d.Client.CreatedAt = clientCreatedAt.Time

	return &d, nil
}

func (r *Repository) scanDetailsRows(rows *sql.Rows) ([]*domain.AppointmentDetails, error) {
	appointments := make([]*domain.AppointmentDetails, 0)

	for rows.Next() {
		details, err := r.scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
