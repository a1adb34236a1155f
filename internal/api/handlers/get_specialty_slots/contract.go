package get_specialty_slots

import (
	"context"

	"github.com/polyakovn/HMS-SchedulingService/internal/service/slots/models"
)

type SlotsService interface {
	SearchBySpecialty(ctx context.Context, specialtyID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
