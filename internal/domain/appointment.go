package domain

import "time"

// AppointmentState represents the status of an appointment
type AppointmentState string

const (
	AppointmentStateFree      AppointmentState = "free"
	AppointmentStateConfirmed AppointmentState = "confirmed"
	AppointmentStateCancelled AppointmentState = "cancelled"
)

// Urgency степень срочности приёма
type Urgency string

const (
	UrgencyNormal    Urgency = "a"
	UrgencyUrgent    Urgency = "b"
	UrgencyEmergency Urgency = "c"
)

// Appointment represents a patient visit bound to exactly one slot
type Appointment struct {
	ID     int64
	Name   string // Уникальный референс вида "APP 2025/a1b2c3"
	SlotID int64

	PatientID     int64
	DoctorID      int64 // Денормализовано из слота, всегда равно slot.DoctorID
	InstitutionID int64
	SpecialtyID   int64

	Urgency      Urgency
	VisitType    string
	DeliveryMode DeliveryMode
	State        AppointmentState

	CreatedBy int64 // ID пользователя-владельца
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.State == AppointmentStateCancelled
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.State != AppointmentStateCancelled
}

// CanTransitionTo reports whether the state change is allowed.
// Transitions are monotonic: free -> confirmed -> cancelled.
func (a *Appointment) CanTransitionTo(next AppointmentState) bool {
	switch a.State {
	case AppointmentStateFree:
		return next == AppointmentStateConfirmed || next == AppointmentStateCancelled
	case AppointmentStateConfirmed:
		return next == AppointmentStateCancelled
	default:
		return false
	}
}

// ValidAppointmentState returns true for a known appointment state value
func ValidAppointmentState(state AppointmentState) bool {
	switch state {
	case AppointmentStateFree, AppointmentStateConfirmed, AppointmentStateCancelled:
		return true
	default:
		return false
	}
}
