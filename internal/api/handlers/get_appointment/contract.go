package get_appointment

import (
	"context"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
