package book_appointment

import (
	"context"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	FindFreeByDoctorDateTime(ctx context.Context, doctorID int64, date time.Time, start types.TimeString) (*domain.Slot, error)
	FindOverlapping(ctx context.Context, doctorID int64, date time.Time, start, end types.TimeString, excludeID *int64) ([]*domain.Slot, error)
	InsertBatch(ctx context.Context, slots []*domain.Slot) error
	MarkBooked(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// PartyServiceClient интерфейс клиента для PartyService
type PartyServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*partyservice.Doctor, error)
	GetPatientByUser(ctx context.Context, userID int64) (*partyservice.Patient, error)
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
