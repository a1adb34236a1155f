package models

import (
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"` // Референс вида "APP 2025/a1b2c3"
	SlotID        int64  `json:"slotId"`
	PatientID     int64  `json:"patientId"`
	DoctorID      int64  `json:"doctorId"`
	InstitutionID int64  `json:"institutionId"`
	SpecialtyID   int64  `json:"specialtyId"`
	Urgency       string `json:"urgency"`
	VisitType     string `json:"visitType"`
	DeliveryMode  string `json:"deliveryMode"`
	State         string `json:"state"`
	CreatedBy     int64  `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:            a.ID,
		Name:          a.Name,
		SlotID:        a.SlotID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		InstitutionID: a.InstitutionID,
		SpecialtyID:   a.SpecialtyID,
		Urgency:       string(a.Urgency),
		VisitType:     a.VisitType,
		DeliveryMode:  string(a.DeliveryMode),
		State:         string(a.State),
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if apptResp := FromDomainAppointment(a); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}
