package get_patient_appointments

import (
	"context"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListPatientAppointments(ctx context.Context, caller domain.Caller, date *time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
