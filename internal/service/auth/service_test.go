package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	users       map[string]*domain.User
	createCalls int
}

func newFakeRepo(users ...*domain.User) *fakeRepo {
	byName := make(map[string]*domain.User)
	for _, u := range users {
		byName[u.Username] = u
	}
	return &fakeRepo{users: byName}
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.createCalls++
	if _, exists := f.users[u.Username]; exists {
		return nil, userRepo.ErrUsernameTaken
	}
	out := *u
	out.ID = int64(len(f.users) + 1)
	f.users[out.Username] = &out
	return &out, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func adminUser(t *testing.T, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: 1, Username: username, Password: string(hash), Role: domain.RoleAdmin}
}

func newTestService(repo UserRepository) *Service {
	return NewService(repo, "test-secret", time.Hour, nopLogger{})
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(newFakeRepo(adminUser(t, "admin", "admin123")))

	token, user, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(adminUser(t, "admin", "admin123")))

	_, _, err := svc.Login(context.Background(), "admin", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeRepo())

	// Та же ошибка, что и при неверном пароле - не раскрываем, что именно не так
	_, _, err := svc.Login(context.Background(), "nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ShortCredentials(t *testing.T) {
	svc := newTestService(newFakeRepo(adminUser(t, "admin", "admin123")))

	_, _, err := svc.Login(context.Background(), "ad", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "admin", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	svc := newTestService(newFakeRepo(adminUser(t, "admin", "admin123")))

	token, _, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := newTestService(newFakeRepo(adminUser(t, "admin", "admin123")))
	verifier := NewService(newFakeRepo(), "other-secret", time.Hour, nopLogger{})

	token, _, err := issuer.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := NewService(newFakeRepo(adminUser(t, "admin", "admin123")), "test-secret", -time.Minute, nopLogger{})

	token, _, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEnsureDefaultAdmin_CreatesOnFirstRun(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", "admin123"))
	assert.Equal(t, 1, repo.createCalls)

	_, _, err := svc.Login(context.Background(), "admin", "admin123")
	assert.NoError(t, err)
}

func TestEnsureDefaultAdmin_SkipsWhenUsersExist(t *testing.T) {
	repo := newFakeRepo(adminUser(t, "owner", "ownerpass"))
	svc := newTestService(repo)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", "admin123"))
	assert.Equal(t, 0, repo.createCalls)
}
