package cancel_slots

import "context"

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CancelByIDs(ctx context.Context, ids []int64) ([]int64, error)
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
