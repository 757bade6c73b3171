package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrSlotTaken возвращается, когда выбранное время уже занято
	ErrSlotTaken = errors.New("create_appointment: time slot is already taken")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку расписания
	ErrInvalidTimeSlot = errors.New("create_appointment: time is not in the schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidPhone возвращается при некорректном формате телефона
	ErrInvalidPhone = errors.New("create_appointment: invalid phone format")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
