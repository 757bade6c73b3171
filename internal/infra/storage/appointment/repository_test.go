package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() { db.Close() }
}

func detailsRows() *sqlmock.Rows {
	return sqlmock.NewRows(joinedColumns)
}

func addDetailsRow(rows *sqlmock.Rows, id int64, date time.Time, slot, status string) *sqlmock.Rows {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, int64(7), int64(1), date, slot, status, nil, now, now,
		int64(7), "Maria Silva", "+351 912 345 678", now,
		int64(1), "Design de Sobrancelhas", "", 2500, 45, true,
	)
}

func TestRepository_Create_Success(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(int64(7), int64(1), date, "10:00", "scheduled", nil).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), createdAt, createdAt),
		)

	created, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID:  7,
		ServiceID: 1,
		Date:      date,
		Time:      types.TimeString("10:00"),
		Status:    domain.StatusScheduled,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolationMapsToSlotTaken(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_appointments_active_slot"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID:  7,
		ServiceID: 1,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:      types.TimeString("10:00"),
		Status:    domain.StatusScheduled,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM appointments a JOIN clients c").
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_Success(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM appointments a JOIN clients c").
		WithArgs(int64(42)).
		WillReturnRows(addDetailsRow(detailsRows(), 42, date, "10:00", "scheduled"))

	details, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), details.ID)
	assert.Equal(t, types.TimeString("10:00"), details.Time)
	assert.Equal(t, "Maria Silva", details.Client.FullName)
	assert.Equal(t, 2500, details.Service.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_OrderedAndLimited(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := detailsRows()
	addDetailsRow(rows, 2, date, "11:00", "scheduled")
	addDetailsRow(rows, 1, date, "10:00", "confirmed")

	mock.ExpectQuery(`SELECT (.+) FROM appointments a JOIN clients c (.+) ORDER BY a\.date DESC, a\.time DESC LIMIT 50`).
		WillReturnRows(rows)

	appointments, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, int64(2), appointments[0].ID)
	assert.Equal(t, int64(1), appointments[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDate_NoLockOutsideTransaction(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := addDetailsRow(detailsRows(), 1, date, "09:30", "scheduled")

	mock.ExpectQuery(`SELECT (.+) FROM appointments a (.+) ORDER BY a\.time ASC$`).
		WithArgs(date).
		WillReturnRows(rows)

	appointments, err := repo.GetByDate(context.Background(), date)

	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, types.TimeString("09:30"), appointments[0].Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDateRange_Success(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	from := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	rows := detailsRows()
	addDetailsRow(rows, 1, from, "10:00", "completed")
	addDetailsRow(rows, 2, to, "14:30", "scheduled")

	mock.ExpectQuery(`SELECT (.+) FROM appointments a (.+) ORDER BY a\.date ASC, a\.time ASC`).
		WithArgs(from, to).
		WillReturnRows(rows)

	appointments, err := repo.GetByDateRange(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_StatusOnly(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	status := domain.StatusConfirmed

	mock.ExpectExec("UPDATE appointments SET").
		WithArgs("confirmed", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM appointments a JOIN clients c").
		WithArgs(int64(42)).
		WillReturnRows(addDetailsRow(detailsRows(), 42, date, "10:00", "confirmed"))

	details, err := repo.Update(context.Background(), 42, domain.AppointmentPatch{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, details.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_UniqueViolationMapsToSlotTaken(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	slot := types.TimeString("10:00")

	mock.ExpectExec("UPDATE appointments SET").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_appointments_active_slot"})

	_, err := repo.Update(context.Background(), 42, domain.AppointmentPatch{Time: &slot})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	status := domain.StatusConfirmed

	mock.ExpectExec("UPDATE appointments SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), 999, domain.AppointmentPatch{Status: &status})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_EmptyPatchReturnsCurrent(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM appointments a JOIN clients c").
		WithArgs(int64(42)).
		WillReturnRows(addDetailsRow(detailsRows(), 42, date, "10:00", "scheduled"))

	details, err := repo.Update(context.Background(), 42, domain.AppointmentPatch{})

	require.NoError(t, err)
	assert.Equal(t, int64(42), details.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_Success(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 42)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 999)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
