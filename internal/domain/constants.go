package domain

// Business validation constants
const (
	MinSlotDurationMinutes     = 5
	MaxSlotDurationMinutes     = 480 // 8 hours
	MaxGenerationRangeDays     = 92  // ~3 months per batch
	DefaultSlotDurationMinutes = 30  // Для слотов, синтезируемых legacy-бронированием
)

// Default appointment metadata values
const (
	DefaultUrgency   = UrgencyNormal
	DefaultVisitType = "general"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
