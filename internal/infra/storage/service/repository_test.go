package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() { db.Close() }
}

func serviceRows() *sqlmock.Rows {
	return sqlmock.NewRows(serviceColumns)
}

func TestRepository_GetActive_FiltersInactive(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	rows := serviceRows().
		AddRow(int64(1), "Design de Sobrancelhas", "", 2500, 45, true).
		AddRow(int64(2), "Extensão de Pestanas", "", 4500, 90, true)

	mock.ExpectQuery(`SELECT (.+) FROM services WHERE is_active = \$1 ORDER BY id ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	services, err := repo.GetActive(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Design de Sobrancelhas", services[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_NoActivityFilter(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	rows := serviceRows().
		AddRow(int64(1), "Design de Sobrancelhas", "", 2500, 45, true).
		AddRow(int64(3), "Laminação de Sobrancelhas", "", 3500, 60, false)

	mock.ExpectQuery(`SELECT (.+) FROM services ORDER BY id ASC`).
		WillReturnRows(rows)

	services, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.False(t, services[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM services").
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Success(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO services").
		WithArgs("Henna para Sobrancelhas", "", 2000, 45, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	created, err := repo.Create(context.Background(), &domain.Service{
		Name:     "Henna para Sobrancelhas",
		Price:    2000,
		Duration: 45,
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_OnlySetFieldsFromPatch(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	rows := serviceRows().
		AddRow(int64(1), "Design de Sobrancelhas", "", 3000, 45, true)

	// Запрос содержит только price: остальные поля patch равны nil
	mock.ExpectQuery(`UPDATE services SET price = \$1 WHERE id = \$2 RETURNING`).
		WithArgs(3000, int64(1)).
		WillReturnRows(rows)

	updated, err := repo.Update(context.Background(), 1, domain.ServicePatch{
		Price: ptr.Ptr(3000),
	})

	require.NoError(t, err)
	assert.Equal(t, 3000, updated.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectQuery("UPDATE services SET").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 999, domain.ServicePatch{
		Price: ptr.Ptr(3000),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_EmptyPatchReturnsCurrent(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	rows := serviceRows().
		AddRow(int64(1), "Design de Sobrancelhas", "", 2500, 45, true)

	mock.ExpectQuery("SELECT (.+) FROM services").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	updated, err := repo.Update(context.Background(), 1, domain.ServicePatch{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_Success(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM services").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_ForeignKeyViolationMapsToServiceInUse(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM services").
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "appointments_service_id_fkey"})

	err := repo.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrServiceInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepository(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM services").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 999)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
