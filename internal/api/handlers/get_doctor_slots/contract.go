package get_doctor_slots

import (
	"context"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/service/slots/models"
)

type SlotsService interface {
	SearchByDoctorDate(ctx context.Context, doctorID int64, date time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
