package update_appointment

import (
	"context"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateSlot(ctx context.Context, id int64, slotID int64) error
	UpdateState(ctx context.Context, id int64, state domain.AppointmentState) error
	UpdateDeliveryMode(ctx context.Context, id int64, mode domain.DeliveryMode) error
	UpdateMetadata(ctx context.Context, id int64, urgency *domain.Urgency, visitType *string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	MarkBooked(ctx context.Context, id int64) error
	Release(ctx context.Context, id int64) error
}

// PartyServiceClient интерфейс клиента для PartyService
type PartyServiceClient interface {
	GetDoctorByUser(ctx context.Context, userID int64) (*partyservice.Doctor, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
