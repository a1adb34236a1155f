package appointments

import (
	"context"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64, date *time.Time) ([]*domain.Appointment, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// PartyServiceClient интерфейс клиента для PartyService
type PartyServiceClient interface {
	GetDoctorByUser(ctx context.Context, userID int64) (*partyservice.Doctor, error)
	GetPatientByUser(ctx context.Context, userID int64) (*partyservice.Patient, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
