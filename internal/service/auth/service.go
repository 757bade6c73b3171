package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// Service сервис аутентификации администратора
// Пароли хранятся как bcrypt-хеши; сессия - подписанный JWT (HS256)
type Service struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(repo UserRepository, secret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Claims данные, зашитые в токен сессии администратора
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Login проверяет учетные данные и возвращает токен сессии
// При любом несовпадении возвращается одинаковая ошибка ErrInvalidCredentials,
// не раскрывающая, что именно неверно
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if len(username) < domain.MinUsernameLength || len(password) < domain.MinPasswordLength {
		s.logger.Warn("Login: rejected too short credentials for username=%q", username)
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%q", username)
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%q: %v", username, err)
		return "", nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("Login: password mismatch for username=%q", username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("Login: failed to issue token for username=%q: %v", username, err)
		return "", nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin username=%q authenticated", username)
	return token, user, nil
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken проверяет подпись и срок действия токена сессии
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// EnsureDefaultAdmin создает администратора по умолчанию, если пользователей
// ещё нет (первый запуск). Пароль по умолчанию следует сменить после входа
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: EnsureDefaultAdmin - count users: %v", ErrInternal, err)
	}

	if count > 0 {
		s.logger.Info("EnsureDefaultAdmin: users already exist, skipping bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureDefaultAdmin - hash password: %v", ErrInternal, err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username: username,
		Password: string(hash),
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		// Конкурентный старт двух процессов: второй проигрывает по unique index
		if errors.Is(err, userRepo.ErrUsernameTaken) {
			s.logger.Info("EnsureDefaultAdmin: admin already created by another process")
			return nil
		}
		return fmt.Errorf("%w: EnsureDefaultAdmin - create user: %v", ErrInternal, err)
	}

	s.logger.Warn("EnsureDefaultAdmin: default admin %q created, change the password after first login", created.Username)
	return nil
}
