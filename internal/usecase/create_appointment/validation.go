package create_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, template []types.TimeString) error {
	if len(strings.TrimSpace(req.ClientName)) < domain.MinNameLength {
		return fmt.Errorf("%w: client name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !isInTemplate(req.Time, template) {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.Time)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isInTemplate проверяет, что время входит в сетку расписания
func isInTemplate(t types.TimeString, template []types.TimeString) bool {
	for _, slot := range template {
		if slot == t {
			return true
		}
	}
	return false
}
