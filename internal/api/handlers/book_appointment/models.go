package book_appointment

import (
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/book_appointment"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// BookAppointmentRequest HTTP request model
// Основной путь передаёт slotId; legacy-путь - doctorId + date + startTime
type BookAppointmentRequest struct {
	SlotID *int64 `json:"slotId,omitempty"`

	DoctorID  *int64  `json:"doctorId,omitempty"`
	Date      *string `json:"date,omitempty"`      // "2025-04-11"
	StartTime *string `json:"startTime,omitempty"` // "10:00"

	Urgency     *string `json:"urgency,omitempty"`
	VisitType   *string `json:"visitType,omitempty"`
	SpecialtyID *int64  `json:"specialtyId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *BookAppointmentRequest) ToUseCaseRequest(userID int64) (*uc.Request, error) {
	req := &uc.Request{
		UserID:      userID,
		SlotID:      r.SlotID,
		DoctorID:    r.DoctorID,
		Urgency:     r.Urgency,
		VisitType:   r.VisitType,
		SpecialtyID: r.SpecialtyID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %v", err)
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start := types.TimeString(*r.StartTime)
		req.StartTime = &start
	}

	return req, nil
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SlotID        int64  `json:"slotId"`
	PatientID     int64  `json:"patientId"`
	DoctorID      int64  `json:"doctorId"`
	InstitutionID int64  `json:"institutionId"`
	SpecialtyID   int64  `json:"specialtyId"`
	Urgency       string `json:"urgency"`
	VisitType     string `json:"visitType"`
	DeliveryMode  string `json:"deliveryMode"`
	State         string `json:"state"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		ID:            resp.ID,
		Name:          resp.Name,
		SlotID:        resp.SlotID,
		PatientID:     resp.PatientID,
		DoctorID:      resp.DoctorID,
		InstitutionID: resp.InstitutionID,
		SpecialtyID:   resp.SpecialtyID,
		Urgency:       resp.Urgency,
		VisitType:     resp.VisitType,
		DeliveryMode:  resp.DeliveryMode,
		State:         resp.State,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}
