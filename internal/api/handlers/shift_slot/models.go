package shift_slot

import (
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/shift_slot"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// ShiftSlotRequest HTTP request model
type ShiftSlotRequest struct {
	NewDate      string `json:"newDate"`      // "2025-04-11"
	NewStartTime string `json:"newStartTime"` // "11:00"
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *ShiftSlotRequest) ToUseCaseRequest(slotID int64) (*uc.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, fmt.Errorf("invalid newDate: %v", err)
	}

	return &uc.Request{
		SlotID:       slotID,
		NewDate:      newDate,
		NewStartTime: types.TimeString(r.NewStartTime),
	}, nil
}

// ShiftSlotResponse HTTP response model
type ShiftSlotResponse struct {
	ID              int64  `json:"id"`
	DoctorID        int64  `json:"doctorId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	DeliveryMode    string `json:"deliveryMode"`
	State           string `json:"state"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *ShiftSlotResponse {
	return &ShiftSlotResponse{
		ID:              resp.ID,
		DoctorID:        resp.DoctorID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		DeliveryMode:    resp.DeliveryMode,
		State:           resp.State,
	}
}
