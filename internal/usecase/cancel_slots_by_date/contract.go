package cancel_slots_by_date

import (
	"context"
	"time"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CancelByDate(ctx context.Context, date time.Time, doctorID *int64) ([]int64, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	CancelBySlotIDs(ctx context.Context, slotIDs []int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
