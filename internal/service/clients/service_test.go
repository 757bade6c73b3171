package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/client"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	byPhone     map[string]*domain.Client
	createCalls int
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	for _, c := range f.byPhone {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeRepo) GetByPhone(_ context.Context, phone string) (*domain.Client, error) {
	c, ok := f.byPhone[phone]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	f.createCalls++
	out := *c
	out.ID = int64(len(f.byPhone) + 1)
	f.byPhone[out.Phone] = &out
	return &out, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	c, err := f.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if patch.FullName != nil {
		c.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	return c, nil
}

func TestFindOrCreate_CreatesNewClient(t *testing.T) {
	repo := &fakeRepo{byPhone: map[string]*domain.Client{}}
	svc := NewService(repo, nopLogger{})

	created, err := svc.FindOrCreate(context.Background(), "Maria Silva", "+351 912 345 678")
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", created.FullName)
	assert.Equal(t, 1, repo.createCalls)
}

func TestFindOrCreate_ReturnsExistingByPhone(t *testing.T) {
	repo := &fakeRepo{byPhone: map[string]*domain.Client{
		"+351 912 345 678": {ID: 7, FullName: "Maria Silva", Phone: "+351 912 345 678"},
	}}
	svc := NewService(repo, nopLogger{})

	// Имя в запросе отличается, но номер совпадает - дубликат не создается
	found, err := svc.FindOrCreate(context.Background(), "Maria S.", "+351 912 345 678")
	require.NoError(t, err)
	assert.Equal(t, int64(7), found.ID)
	assert.Equal(t, "Maria Silva", found.FullName)
	assert.Equal(t, 0, repo.createCalls)
}

func TestFindOrCreate_InvalidPhone(t *testing.T) {
	svc := NewService(&fakeRepo{byPhone: map[string]*domain.Client{}}, nopLogger{})

	_, err := svc.FindOrCreate(context.Background(), "Maria Silva", "12345")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestGetByPhone_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{byPhone: map[string]*domain.Client{}}, nopLogger{})

	_, err := svc.GetByPhone(context.Background(), "+351 912 345 678")
	assert.ErrorIs(t, err, ErrClientNotFound)
}
