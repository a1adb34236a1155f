package convert_delivery_mode

import (
	"context"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateDeliveryMode(ctx context.Context, id int64, mode domain.DeliveryMode) error
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetActiveBySlotID(ctx context.Context, slotID int64) (*domain.Appointment, error)
	UpdateDeliveryMode(ctx context.Context, id int64, mode domain.DeliveryMode) error
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
