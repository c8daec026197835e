package domain

import (
	"time"

	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents an existing client appointment with a professional.
// The availability engine only reads appointments; it never creates or mutates them.
type Appointment struct {
	ID             int64
	BusinessID     int64
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeString

	// ServiceDurationMinutes длительность привязанной услуги.
	// nil, если ссылку на услугу не удалось разрешить - в этом случае
	// сборщик интервалов использует DefaultServiceDurationMinutes.
	ServiceDurationMinutes *int

	Status    AppointmentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Occupies returns true if the appointment occupies the professional's time.
// Only cancelled appointments free their slot.
func (a *Appointment) Occupies() bool {
	return !a.IsCancelled()
}

// EffectiveDurationMinutes returns the service duration, falling back to the
// default when the service reference could not be resolved
func (a *Appointment) EffectiveDurationMinutes() int {
	if a.ServiceDurationMinutes == nil || *a.ServiceDurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return *a.ServiceDurationMinutes
}
