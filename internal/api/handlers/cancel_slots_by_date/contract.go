package cancel_slots_by_date

import (
	"context"

	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots_by_date"
)

type CancelSlotsByDateUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*uc.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
