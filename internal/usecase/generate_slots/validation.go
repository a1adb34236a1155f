package generate_slots

import (
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s",
			ErrInvalidTimeWindow, req.StartTime, req.EndTime)
	}

	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if !domain.ValidDeliveryMode(domain.DeliveryMode(req.DeliveryMode)) {
		return fmt.Errorf("%w: unknown delivery mode %q", ErrInvalidInput, req.DeliveryMode)
	}

	return nil
}

// validateDateRange проверяет границы диапазона генерации
func validateDateRange(startDate, endDate, now time.Time) error {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	today := truncateToDay(now)

	if end.Before(start) {
		return fmt.Errorf("%w: endDate %s is before startDate %s",
			ErrInvalidDateRange, end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}

	if start.Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, start.Format(domain.DateFormat))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > domain.MaxGenerationRangeDays {
		return fmt.Errorf("%w: %d days requested, maximum is %d",
			ErrRangeTooLarge, days, domain.MaxGenerationRangeDays)
	}

	return nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
