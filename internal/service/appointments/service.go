package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	apptStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	partyClient "github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
	"github.com/polyakovn/HMS-SchedulingService/internal/service/appointments/models"
)

// Service сервис чтения приёмов
type Service struct {
	apptRepo    AppointmentRepository
	slotRepo    SlotRepository
	partyClient PartyServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	apptRepo AppointmentRepository,
	slotRepo SlotRepository,
	partyClient PartyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:    apptRepo,
		slotRepo:    slotRepo,
		partyClient: partyClient,
		logger:      logger,
	}
}

// GetByID получает приём по идентификатору.
// Читать приём могут только владелец записи и назначенный врач.
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: appointment=%d, user=%d", id, caller.UserID)

	if id <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptStorage.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	caller = s.resolveDoctorIdentity(ctx, caller)
	if !domain.CanReadAppointment(caller, appt) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment=%d", caller.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// ListPatientAppointments получает историю приёмов пациента, от новых к старым.
// Опциональный фильтр date ограничивает выдачу одним днём.
func (s *Service) ListPatientAppointments(ctx context.Context, caller domain.Caller, date *time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListPatientAppointments: user=%d", caller.UserID)

	patient, err := s.partyClient.GetPatientByUser(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, partyClient.ErrPatientNotFound) {
			s.logger.Warn("ListPatientAppointments: user=%d is not a patient", caller.UserID)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("ListPatientAppointments: failed to resolve patient for user=%d: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: failed to resolve patient: %v", ErrInternal, err)
	}

	appts, err := s.apptRepo.ListByPatient(ctx, patient.ID, date)
	if err != nil {
		s.logger.Error("ListPatientAppointments: repository error for patient=%d: %v", patient.ID, err)
		return nil, fmt.Errorf("%w: ListPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPatientAppointments: found %d appointments for patient=%d", len(appts), patient.ID)
	return models.FromDomainAppointmentList(appts), nil
}

// resolveDoctorIdentity дополняет Caller идентификатором врача, если
// пользователь зарегистрирован как врач в PartyService
func (s *Service) resolveDoctorIdentity(ctx context.Context, caller domain.Caller) domain.Caller {
	if caller.DoctorID != nil {
		return caller
	}

	doctor, err := s.partyClient.GetDoctorByUser(ctx, caller.UserID)
	if err != nil {
		if !errors.Is(err, partyClient.ErrDoctorNotFound) {
			s.logger.Warn("resolveDoctorIdentity: failed to resolve doctor for user=%d: %v", caller.UserID, err)
		}
		return caller
	}

	caller.DoctorID = &doctor.ID
	return caller
}
