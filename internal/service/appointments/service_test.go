package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	byID map[int64]*domain.AppointmentDetails
}

func newFakeRepo(appointments ...*domain.AppointmentDetails) *fakeRepo {
	byID := make(map[int64]*domain.AppointmentDetails)
	for _, a := range appointments {
		byID[a.ID] = a
	}
	return &fakeRepo{byID: byID}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentDetails, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*domain.AppointmentDetails, error) {
	result := make([]*domain.AppointmentDetails, 0, len(f.byID))
	for _, a := range f.byID {
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.AppointmentDetails, error) {
	return f.List(context.Background())
}

func (f *fakeRepo) Update(_ context.Context, id int64, patch domain.AppointmentPatch) (*domain.AppointmentDetails, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	return a, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	return nil
}

func appointment(id int64, status domain.AppointmentStatus) *domain.AppointmentDetails {
	return &domain.AppointmentDetails{
		Appointment: domain.Appointment{
			ID:     id,
			Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Time:   "10:00",
			Status: status,
		},
	}
}

func TestUpdateStatus_ValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.AppointmentStatus
		to   string
	}{
		{name: "scheduled to confirmed", from: domain.StatusScheduled, to: "confirmed"},
		{name: "confirmed to in_progress", from: domain.StatusConfirmed, to: "in_progress"},
		{name: "in_progress to completed", from: domain.StatusInProgress, to: "completed"},
		{name: "scheduled straight to completed", from: domain.StatusScheduled, to: "completed"},
		{name: "scheduled to cancelled", from: domain.StatusScheduled, to: "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(appointment(1, tt.from)), nopLogger{})

			updated, err := svc.UpdateStatus(context.Background(), 1, tt.to)
			require.NoError(t, err)
			assert.Equal(t, domain.AppointmentStatus(tt.to), updated.Status)
		})
	}
}

func TestUpdateStatus_RejectedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.AppointmentStatus
		to   string
	}{
		{name: "completed is terminal", from: domain.StatusCompleted, to: "confirmed"},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: "scheduled"},
		{name: "no going back to confirmed", from: domain.StatusInProgress, to: "confirmed"},
		{name: "no jump to scheduled", from: domain.StatusConfirmed, to: "scheduled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(appointment(1, tt.from)), nopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, tt.to)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, domain.StatusConfirmed)), nopLogger{})

	updated, err := svc.UpdateStatus(context.Background(), 1, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, domain.StatusScheduled)), nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, "done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 42, "confirmed")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, domain.StatusConfirmed)), nopLogger{})

	cancelled, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}

func TestCancel_AlreadyCancelledIsIdempotent(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, domain.StatusCancelled)), nopLogger{})

	cancelled, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}

func TestCancel_CompletedRejected(t *testing.T) {
	svc := NewService(newFakeRepo(appointment(1, domain.StatusCompleted)), nopLogger{})

	_, err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo(appointment(1, domain.StatusScheduled))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrAppointmentNotFound)
}
