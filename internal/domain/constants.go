package domain

// Business validation constants
const (
	MinServicePrice    = 1 // cents
	MinServiceDuration = 1 // minutes
	MaxNotesLength     = 500
	MinNameLength      = 2
	MinUsernameLength  = 3
	MinPasswordLength  = 6

	// AppointmentsPageSize ограничивает выдачу списка записей (свежие сверху)
	AppointmentsPageSize = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses список всех допустимых статусов записи
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus конвертирует строку в AppointmentStatus с валидацией
func ParseStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}
