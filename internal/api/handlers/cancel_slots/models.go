package cancel_slots

import (
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots"
)

// CancelSlotsRequest HTTP request model
type CancelSlotsRequest struct {
	SlotIDs []int64 `json:"slotIds"`
}

// CancelSlotsResponse HTTP response model
type CancelSlotsResponse struct {
	CancelledSlots        int   `json:"cancelledSlots"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *CancelSlotsResponse {
	return &CancelSlotsResponse{
		CancelledSlots:        resp.CancelledSlots,
		CancelledAppointments: resp.CancelledAppointments,
	}
}
