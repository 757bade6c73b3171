package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Window рабочий интервал салона в пределах дня
// Границы включительные: Close — время начала последней записи интервала
type Window struct {
	Open  types.TimeString
	Close types.TimeString
}

// GenerateTemplate строит сетку времени для записи: для каждого интервала
// генерируются слоты от Open до Close включительно с шагом stepMinutes
func GenerateTemplate(windows []Window, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", stepMinutes)
	}

	template := make([]types.TimeString, 0)
	for _, w := range windows {
		if w.Close.IsBefore(w.Open) {
			return nil, fmt.Errorf("window close %s is before open %s", w.Close, w.Open)
		}

		current := w.Open
		for !current.IsAfter(w.Close) {
			template = append(template, current)

			next, err := current.AddMinutes(stepMinutes)
			if err != nil {
				break
			}
			current = next
		}
	}

	return template, nil
}

// filterAvailable возвращает слоты сетки, не занятые активными записями
// Порядок сетки сохраняется; отменённые записи слот не занимают
func filterAvailable(template []types.TimeString, appointments []*domain.AppointmentDetails) []types.TimeString {
	occupied := make(map[types.TimeString]struct{}, len(appointments))
	for _, appt := range appointments {
		if appt.IsActive() {
			occupied[appt.Time] = struct{}{}
		}
	}

	available := make([]types.TimeString, 0, len(template))
	for _, slot := range template {
		if _, taken := occupied[slot]; !taken {
			available = append(available, slot)
		}
	}

	return available
}
