package update_appointment

import (
	"fmt"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Caller.UserID <= 0 {
		return fmt.Errorf("%w: caller userID must be positive", ErrInvalidInput)
	}

	if req.NewSlotID == nil && req.State == nil && req.Urgency == nil && req.VisitType == nil {
		return fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}

	if req.NewSlotID != nil && *req.NewSlotID <= 0 {
		return fmt.Errorf("%w: newSlotID must be positive", ErrInvalidInput)
	}

	if req.State != nil && !domain.ValidAppointmentState(domain.AppointmentState(*req.State)) {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *req.State)
	}

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

	return nil
}
