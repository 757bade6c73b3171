package create_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointmentRepo struct {
	existing  []*domain.AppointmentDetails
	createErr error
	created   *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *a
	out.ID = 42
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.AppointmentDetails, error) {
	return f.existing, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeClientService struct {
	client *domain.Client
	err    error
}

func (f *fakeClientService) FindOrCreate(_ context.Context, _, _ string) (*domain.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testTemplate = []types.TimeString{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
}

func validRequest() *Request {
	return &Request{
		ClientName:  "Maria Silva",
		ClientPhone: "+351 912 345 678",
		ServiceID:   1,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
	}
}

func newTestUseCase(repo *fakeAppointmentRepo) *UseCase {
	return NewUseCase(
		repo,
		&fakeServiceRepo{service: &domain.Service{ID: 1, Name: "Design de Sobrancelhas", Price: 2500, Duration: 45}},
		&fakeClientService{client: &domain.Client{ID: 7, FullName: "Maria Silva", Phone: "+351 912 345 678"}},
		fakeTxManager{},
		testTemplate,
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.ClientID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 2500, resp.ServicePrice)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusScheduled, repo.created.Status)
}

func TestExecute_SlotTakenByExistingAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.AppointmentDetails{
			{Appointment: domain.Appointment{ID: 5, Time: "10:00", Status: domain.StatusConfirmed}},
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
}

func TestExecute_CancelledAppointmentDoesNotBlockSlot(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.AppointmentDetails{
			{Appointment: domain.Appointment{ID: 5, Time: "10:00", Status: domain.StatusCancelled}},
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_SlotTakenRaceMapsRepoError(t *testing.T) {
	// Конкурентная вставка проигрывает по уникальному индексу уже после проверки
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeServiceRepo{},
		&fakeClientService{},
		fakeTxManager{},
		testTemplate,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_TimeOutsideTemplate(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	req := validRequest()
	req.Time = "12:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "short name",
			mutate:  func(r *Request) { r.ClientName = "A" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty phone",
			mutate:  func(r *Request) { r.ClientPhone = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero service id",
			mutate:  func(r *Request) { r.ServiceID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero date",
			mutate:  func(r *Request) { r.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed time",
			mutate:  func(r *Request) { r.Time = "9am" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "notes too long",
			mutate: func(r *Request) {
				notes := strings.Repeat("x", domain.MaxNotesLength+1)
				r.Notes = &notes
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
