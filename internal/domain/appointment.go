package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// Appointment represents a client appointment for a salon service
type Appointment struct {
	ID        int64
	ClientID  int64
	ServiceID int64
	Date      time.Time // calendar date, no time component
	Time      types.TimeString
	Status    AppointmentStatus
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetails is an appointment joined with its client and service
// Used for presentation (admin panel, booking confirmation)
type AppointmentDetails struct {
	Appointment
	Client  Client
	Service Service
}

// IsActive returns true if the appointment occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further status transition is allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanTransitionTo returns true if the transition from the current status to next is allowed
// The state machine is one-directional: scheduled → confirmed → in_progress → completed,
// with cancellation allowed from any non-terminal state
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}

	switch next {
	case StatusConfirmed:
		return a.Status == StatusScheduled
	case StatusInProgress:
		return a.Status == StatusScheduled || a.Status == StatusConfirmed
	case StatusCompleted:
		return a.Status == StatusScheduled || a.Status == StatusConfirmed || a.Status == StatusInProgress
	case StatusCancelled:
		return true
	default:
		return false
	}
}

// AppointmentPatch lists the appointment fields that are legal to mutate after creation
// Nil fields are left untouched
type AppointmentPatch struct {
	Date   *time.Time
	Time   *types.TimeString
	Status *AppointmentStatus
	Notes  *string
}

// IsEmpty returns true if the patch does not change anything
func (p *AppointmentPatch) IsEmpty() bool {
	return p.Date == nil && p.Time == nil && p.Status == nil && p.Notes == nil
}
