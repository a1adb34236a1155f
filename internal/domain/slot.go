package domain

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// SlotState represents the lifecycle state of a slot
type SlotState string

const (
	SlotStateFree      SlotState = "free"
	SlotStateBooked    SlotState = "booked"
	SlotStateCancelled SlotState = "cancelled"
)

// DeliveryMode represents how the visit is delivered
type DeliveryMode string

const (
	DeliveryModePhysical     DeliveryMode = "physical"
	DeliveryModeTelemedicine DeliveryMode = "telemedicine"
)

// Slot represents a bookable unit of doctor time
type Slot struct {
	ID              int64
	DoctorID        int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	DeliveryMode    DeliveryMode
	State           SlotState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFree returns true if the slot can be booked
func (s *Slot) IsFree() bool {
	return s.State == SlotStateFree
}

// IsBooked returns true if the slot is bound to an appointment
func (s *Slot) IsBooked() bool {
	return s.State == SlotStateBooked
}

// IsCancelled returns true if the slot has been cancelled
// Cancellation is terminal: a cancelled slot is never reused
func (s *Slot) IsCancelled() bool {
	return s.State == SlotStateCancelled
}

// Overlaps returns true if the slot's [StartTime, EndTime) window intersects
// the given window. Touching boundaries do not overlap.
func (s *Slot) Overlaps(start, end types.TimeString) bool {
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}

// StartsAt combines the slot's date and start time into a single instant
func (s *Slot) StartsAt() (time.Time, error) {
	return s.StartTime.On(s.Date)
}

// IsInPast returns true if the slot's start instant is before now
func (s *Slot) IsInPast(now time.Time) bool {
	startsAt, err := s.StartsAt()
	if err != nil {
		return false
	}
	return startsAt.Before(now)
}

// ValidDeliveryMode returns true for a known delivery mode value
func ValidDeliveryMode(mode DeliveryMode) bool {
	return mode == DeliveryModePhysical || mode == DeliveryModeTelemedicine
}

// SlotFilter фильтр для выборки слотов врача
type SlotFilter struct {
	DoctorID         int64      // Обязательный параметр
	Date             *time.Time // Конкретная дата (опционально)
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	State            *SlotState // Фильтр по состоянию (опционально)
	ExcludeCancelled bool       // Исключить отменённые слоты
}
