package update_appointment

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
// Поля со значением null не затрагиваются
type UpdateAppointmentRequest struct {
	SlotID    *int64  `json:"slotId,omitempty"`
	State     *string `json:"state,omitempty"`
	Urgency   *string `json:"urgency,omitempty"`
	VisitType *string `json:"visitType,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64, caller domain.Caller) *uc.Request {
	return &uc.Request{
		AppointmentID: appointmentID,
		Caller:        caller,
		NewSlotID:     r.SlotID,
		State:         r.State,
		Urgency:       r.Urgency,
		VisitType:     r.VisitType,
	}
}

// UpdateAppointmentResponse HTTP response model
type UpdateAppointmentResponse struct {
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

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *uc.Response) *UpdateAppointmentResponse {
	return &UpdateAppointmentResponse{
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
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}
