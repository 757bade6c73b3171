package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при несовпадении логина/пароля
	// Намеренно не уточняет, что именно неверно - имя или пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken возвращается при невалидном или истёкшем токене
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth service: internal error")
)
