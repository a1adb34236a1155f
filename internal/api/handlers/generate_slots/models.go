package generate_slots

import (
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/generate_slots"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate       string `json:"startDate"`       // "2025-04-11"
	EndDate         string `json:"endDate"`         // "2025-04-18"
	StartTime       string `json:"startTime"`       // "10:00"
	EndTime         string `json:"endTime"`         // "13:00"
	DurationMinutes int    `json:"durationMinutes"` // Длительность слота
	DeliveryMode    string `json:"deliveryMode"`    // physical / telemedicine
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *GenerateSlotsRequest) ToUseCaseRequest(doctorID int64) (*uc.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %v", err)
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %v", err)
	}

	return &uc.Request{
		DoctorID:        doctorID,
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       types.TimeString(r.StartTime),
		EndTime:         types.TimeString(r.EndTime),
		DurationMinutes: r.DurationMinutes,
		DeliveryMode:    r.DeliveryMode,
	}, nil
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Created int                 `json:"created"`
	Skipped int                 `json:"skipped"`
	Slots   []GeneratedSlotItem `json:"slots"`
}

// GeneratedSlotItem краткое описание созданного слота
type GeneratedSlotItem struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *GenerateSlotsResponse {
	out := &GenerateSlotsResponse{
		Created: resp.Created,
		Skipped: resp.Skipped,
		Slots:   make([]GeneratedSlotItem, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, GeneratedSlotItem{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return out
}
