package book_appointment

import (
	"fmt"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID != nil {
		if *req.SlotID <= 0 {
			return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
		}
		return validateMetadata(req)
	}

	// Legacy-путь: слот определяется тройкой врач/дата/время
	if req.DoctorID == nil || *req.DoctorID <= 0 {
		return fmt.Errorf("%w: either slotID or doctorID is required", ErrInvalidInput)
	}

	if req.Date == nil || req.Date.IsZero() {
		return fmt.Errorf("%w: date is required when booking without slotID", ErrInvalidInput)
	}

	if req.StartTime == nil || req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required when booking without slotID", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return validateMetadata(req)
}

// validateMetadata валидирует опциональные поля приёма
func validateMetadata(req *Request) error {
	if req.Urgency != nil {
		switch domain.Urgency(*req.Urgency) {
		case domain.UrgencyNormal, domain.UrgencyUrgent, domain.UrgencyEmergency:
		default:
			return fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, *req.Urgency)
		}
	}

	if req.VisitType != nil && *req.VisitType == "" {
		return fmt.Errorf("%w: visitType must not be empty", ErrInvalidInput)
	}

	if req.SpecialtyID != nil && *req.SpecialtyID <= 0 {
		return fmt.Errorf("%w: specialtyID must be positive", ErrInvalidInput)
	}

	return nil
}
