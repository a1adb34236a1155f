package shift_slot

import (
	"context"

	uc "github.com/polyakovn/HMS-SchedulingService/internal/usecase/shift_slot"
)

type ShiftSlotUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*uc.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
