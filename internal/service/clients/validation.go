package clients

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Телефон валидируется по формату страны из префикса
// Набор форматов соответствует странам, с которыми работает салон
var (
	phonePortugal = regexp.MustCompile(`^\+351\s9\d{2}\s\d{3}\s\d{3}$`)
	phoneBrazil   = regexp.MustCompile(`^\+55\s\(\d{2}\)\s\d{4,5}-\d{4}$`)
	phoneUSA      = regexp.MustCompile(`^\+1\s\(\d{3}\)\s\d{3}-\d{4}$`)
	phoneGeneric  = regexp.MustCompile(`^\+\d{1,4}\s[\d\s\-()]{6,15}$`)
)

// validatePhone проверяет телефон по формату страны
func validatePhone(phone string) error {
	if len(phone) < 10 || len(phone) > 25 {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	var pattern *regexp.Regexp
	switch {
	case strings.HasPrefix(phone, "+351"):
		pattern = phonePortugal
	case strings.HasPrefix(phone, "+55"):
		pattern = phoneBrazil
	case strings.HasPrefix(phone, "+1"):
		pattern = phoneUSA
	default:
		pattern = phoneGeneric
	}

	if !pattern.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	return nil
}

// validateFullName проверяет имя клиента
func validateFullName(name string) error {
	if len(strings.TrimSpace(name)) < domain.MinNameLength {
		return fmt.Errorf("%w: full name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}
	return nil
}
