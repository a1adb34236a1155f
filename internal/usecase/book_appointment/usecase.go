package book_appointment

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	slotRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	partyClient "github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

// UseCase use case для бронирования приёма
type UseCase struct {
	slotRepo     SlotRepository
	apptRepo     AppointmentRepository
	partyClient  PartyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	partyClient PartyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		apptRepo:     apptRepo,
		partyClient:  partyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case бронирования приёма.
// Захват слота и создание приёма выполняются в одной сериализуемой транзакции;
// перевод free -> booked сделан условным обновлением, поэтому при конкурентном
// бронировании одного слота выигрывает ровно один запрос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: user=%d, slot=%v, doctor=%v", req.UserID, req.SlotID, req.DoctorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Разрешаем пациента по пользователю
	patient, err := uc.partyClient.GetPatientByUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, partyClient.ErrPatientNotFound) {
			uc.logger.Warn("BookAppointment: user id=%d is not a patient", req.UserID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("BookAppointment: failed to resolve patient for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to resolve patient: %v", ErrInternal, err)
	}

	// 3. Определяем врача до открытия транзакции (HTTP-вызовы внутри
	// сериализуемой транзакции не делаем)
	doctorID, err := uc.resolveDoctorID(ctx, req)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.partyClient.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, partyClient.ErrDoctorNotFound) {
			uc.logger.Warn("BookAppointment: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("BookAppointment: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	var (
		slot   *domain.Slot
		result *domain.Appointment
	)

	// 4. Захватываем слот и создаем приём в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		if req.SlotID != nil {
			slot, err = uc.claimSlotByID(txCtx, *req.SlotID, now)
		} else {
			slot, err = uc.claimSlotByDateTime(txCtx, *req.DoctorID, req, now)
		}
		if err != nil {
			return err
		}

		// 4.1. Создаем приём, привязанный к захваченному слоту
		appt := &domain.Appointment{
			Name:          buildAppointmentName(now.Year()),
			SlotID:        slot.ID,
			PatientID:     patient.ID,
			DoctorID:      slot.DoctorID,
			InstitutionID: doctor.InstitutionID,
			SpecialtyID:   resolveSpecialtyID(req, doctor),
			Urgency:       resolveUrgency(req),
			VisitType:     resolveVisitType(req),
			DeliveryMode:  slot.DeliveryMode,
			State:         domain.AppointmentStateConfirmed,
			CreatedBy:     req.UserID,
		}

		result, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d (%s) on slot id=%d",
		result.ID, result.Name, slot.ID)

	return &Response{
		ID:            result.ID,
		Name:          result.Name,
		SlotID:        result.SlotID,
		PatientID:     result.PatientID,
		DoctorID:      result.DoctorID,
		InstitutionID: result.InstitutionID,
		SpecialtyID:   result.SpecialtyID,
		Urgency:       string(result.Urgency),
		VisitType:     result.VisitType,
		DeliveryMode:  string(result.DeliveryMode),
		State:         string(result.State),
		Date:          slot.Date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// resolveDoctorID определяет врача: из запроса или из указанного слота
func (uc *UseCase) resolveDoctorID(ctx context.Context, req *Request) (int64, error) {
	if req.DoctorID != nil {
		return *req.DoctorID, nil
	}

	slot, err := uc.slotRepo.GetByID(ctx, *req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("BookAppointment: slot id=%d not found", *req.SlotID)
			return 0, ErrSlotNotFound
		}
		uc.logger.Error("BookAppointment: failed to get slot id=%d: %v", *req.SlotID, err)
		return 0, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	return slot.DoctorID, nil
}

// claimSlotByID захватывает существующий слот по ID (основной путь)
func (uc *UseCase) claimSlotByID(ctx context.Context, slotID int64, now time.Time) (*domain.Slot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// Отменённый слот никогда не переиспользуется
	if slot.IsCancelled() {
		uc.logger.Warn("BookAppointment: slot id=%d is cancelled", slotID)
		return nil, ErrSlotUnavailable
	}

	if slot.IsInPast(now) {
		uc.logger.Warn("BookAppointment: slot id=%d is in the past", slotID)
		return nil, ErrSlotInPast
	}

	if err := uc.slotRepo.MarkBooked(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotUnavailable) {
			uc.logger.Warn("BookAppointment: slot id=%d already taken", slotID)
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("%w: failed to mark slot booked: %v", ErrInternal, err)
	}

	slot.State = domain.SlotStateBooked
	return slot, nil
}

// claimSlotByDateTime захватывает слот по тройке врач/дата/время (legacy-путь).
// Если подходящего свободного слота нет, синтезируется новый слот стандартной
// длительности, сразу в состоянии booked
func (uc *UseCase) claimSlotByDateTime(ctx context.Context, doctorID int64, req *Request, now time.Time) (*domain.Slot, error) {
	startsAt, err := req.StartTime.On(*req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if startsAt.Before(now) {
		uc.logger.Warn("BookAppointment: requested datetime %s is in the past", startsAt)
		return nil, ErrSlotInPast
	}

	slot, err := uc.slotRepo.FindFreeByDoctorDateTime(ctx, doctorID, *req.Date, *req.StartTime)
	if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
		return nil, fmt.Errorf("%w: failed to find slot: %v", ErrInternal, err)
	}

	if slot != nil {
		if err := uc.slotRepo.MarkBooked(ctx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotUnavailable) {
				return nil, ErrSlotUnavailable
			}
			return nil, fmt.Errorf("%w: failed to mark slot booked: %v", ErrInternal, err)
		}
		slot.State = domain.SlotStateBooked
		return slot, nil
	}

	// Слота с таким временем нет - синтезируем
	endTime, err := req.StartTime.AddMinutes(domain.DefaultSlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	// Синтезированное окно не должно пересекаться с существующими
	// неотменёнными слотами врача
	overlapping, err := uc.slotRepo.FindOverlapping(ctx, doctorID, *req.Date, *req.StartTime, endTime, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
	}
	if len(overlapping) > 0 {
		uc.logger.Warn("BookAppointment: requested window %s-%s conflicts with %d slot(s) of doctor=%d",
			*req.StartTime, endTime, len(overlapping), doctorID)
		return nil, ErrSlotUnavailable
	}

	synthesized := &domain.Slot{
		DoctorID:        doctorID,
		Date:            *req.Date,
		StartTime:       *req.StartTime,
		EndTime:         endTime,
		DurationMinutes: domain.DefaultSlotDurationMinutes,
		DeliveryMode:    domain.DeliveryModePhysical,
		State:           domain.SlotStateBooked,
	}

	if err := uc.slotRepo.InsertBatch(ctx, []*domain.Slot{synthesized}); err != nil {
		uc.logger.Error("BookAppointment: failed to synthesize slot: %v", err)
		return nil, fmt.Errorf("%w: failed to synthesize slot: %v", ErrInternal, err)
	}

	uc.logger.Info("BookAppointment: synthesized slot id=%d for doctor=%d at %s %s",
		synthesized.ID, doctorID, req.Date.Format(domain.DateFormat), *req.StartTime)

	return synthesized, nil
}

// buildAppointmentName формирует уникальный референс приёма вида "APP 2025/a1b2c3"
func buildAppointmentName(year int) string {
	id := uuid.New()
	return fmt.Sprintf("APP %d/%s", year, hex.EncodeToString(id[:3]))
}

// resolveSpecialtyID выбирает специальность: из запроса или первую у врача
func resolveSpecialtyID(req *Request, doctor *partyClient.Doctor) int64 {
	if req.SpecialtyID != nil {
		return *req.SpecialtyID
	}
	if len(doctor.SpecialtyIDs) > 0 {
		return doctor.SpecialtyIDs[0]
	}
	return 0
}

// resolveUrgency возвращает срочность из запроса или значение по умолчанию
func resolveUrgency(req *Request) domain.Urgency {
	if req.Urgency != nil {
		return domain.Urgency(*req.Urgency)
	}
	return domain.DefaultUrgency
}

// resolveVisitType возвращает тип визита из запроса или значение по умолчанию
func resolveVisitType(req *Request) string {
	if req.VisitType != nil {
		return *req.VisitType
	}
	return domain.DefaultVisitType
}
