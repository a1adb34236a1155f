package generate_slots

import (
	"context"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	InsertBatch(ctx context.Context, slots []*domain.Slot) error
}

// PartyServiceClient интерфейс клиента для PartyService
type PartyServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*partyservice.Doctor, error)
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
