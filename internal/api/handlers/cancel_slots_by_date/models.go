package cancel_slots_by_date

import (
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots_by_date"
)

// CancelSlotsByDateRequest HTTP request model
type CancelSlotsByDateRequest struct {
	Date     string `json:"date"`               // "2025-04-11"
	DoctorID *int64 `json:"doctorId,omitempty"` // Ограничить отмену одним врачом
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CancelSlotsByDateRequest) ToUseCaseRequest() (*uc.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}

	return &uc.Request{
		Date:     date,
		DoctorID: r.DoctorID,
	}, nil
}

// CancelSlotsByDateResponse HTTP response model
type CancelSlotsByDateResponse struct {
	CancelledSlots        int   `json:"cancelledSlots"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *CancelSlotsByDateResponse {
	return &CancelSlotsByDateResponse{
		CancelledSlots:        resp.CancelledSlots,
		CancelledAppointments: resp.CancelledAppointments,
	}
}
