package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/catalog"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	active []*domain.Service
	all    []*domain.Service

	getActiveCalls int
	deleteErr      error
	updateErr      error
}

func (f *fakeRepo) GetActive(_ context.Context) ([]*domain.Service, error) {
	f.getActiveCalls++
	return f.active, nil
}

func (f *fakeRepo) GetAll(_ context.Context) ([]*domain.Service, error) {
	return f.all, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, svc := range f.all {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (f *fakeRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	out := *svc
	out.ID = int64(len(f.all) + 1)
	f.all = append(f.all, &out)
	if out.IsActive {
		f.active = append(f.active, &out)
	}
	return &out, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, _ domain.ServicePatch) (*domain.Service, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakeRepo) Delete(_ context.Context, _ int64) error {
	return f.deleteErr
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, catalogCache.New(30*time.Second), nopLogger{})
}

func seededRepo() *fakeRepo {
	active := &domain.Service{ID: 1, Name: "Design de Sobrancelhas", Price: 2500, Duration: 45, IsActive: true}
	hidden := &domain.Service{ID: 2, Name: "Henna para Sobrancelhas", Price: 2000, Duration: 45, IsActive: false}
	return &fakeRepo{
		active: []*domain.Service{active},
		all:    []*domain.Service{active, hidden},
	}
}

func TestGetActive_UsesCacheOnSecondRead(t *testing.T) {
	repo := seededRepo()
	svc := newTestService(repo)

	first, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Второе чтение в пределах TTL не ходит в хранилище
	assert.Equal(t, 1, repo.getActiveCalls)
}

func TestGetAll_IncludesInactive(t *testing.T) {
	svc := newTestService(seededRepo())

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetByID(t *testing.T) {
	svc := newTestService(seededRepo())

	found, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Henna para Sobrancelhas", found.Name)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreate_InvalidatesCache(t *testing.T) {
	repo := seededRepo()
	svc := newTestService(repo)

	_, err := svc.GetActive(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &domain.Service{
		Name:     "Lifting de Pestanas",
		Price:    3000,
		Duration: 60,
		IsActive: true,
	})
	require.NoError(t, err)

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 2)
	// Мутация инвалидировала кеш, чтение перечитало хранилище
	assert.Equal(t, 2, repo.getActiveCalls)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(seededRepo())

	tests := []struct {
		name    string
		service *domain.Service
	}{
		{name: "short name", service: &domain.Service{Name: "X", Price: 100, Duration: 30}},
		{name: "zero price", service: &domain.Service{Name: "Massagem", Price: 0, Duration: 30}},
		{name: "zero duration", service: &domain.Service{Name: "Massagem", Price: 100, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.service)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_Validation(t *testing.T) {
	svc := newTestService(seededRepo())

	_, err := svc.Update(context.Background(), 1, domain.ServicePatch{Price: ptr.Ptr(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 1, domain.ServicePatch{Duration: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := seededRepo()
	repo.updateErr = serviceRepo.ErrServiceNotFound
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), 99, domain.ServicePatch{Price: ptr.Ptr(100)})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDelete_ServiceInUse(t *testing.T) {
	repo := seededRepo()
	repo.deleteErr = serviceRepo.ErrServiceInUse
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceInUse)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := seededRepo()
	svc := newTestService(repo)

	_, err := svc.GetActive(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))

	_, err = svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getActiveCalls)
}
