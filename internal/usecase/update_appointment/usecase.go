package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	partyClient "github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

// UseCase use case для изменения приёма
type UseCase struct {
	apptRepo     AppointmentRepository
	slotRepo     SlotRepository
	partyClient  PartyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	slotRepo SlotRepository,
	partyClient PartyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		slotRepo:     slotRepo,
		partyClient:  partyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения приёма.
// Изменять приём могут только владелец записи и назначенный врач.
// Перенос на другой слот захватывает целевой слот условным обновлением и
// освобождает прежний, если тот ещё не в прошлом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: appointment=%d, user=%d", req.AppointmentID, req.Caller.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дополняем идентификатор врача до открытия транзакции
	caller := uc.resolveDoctorIdentity(ctx, req.Caller)

	var result *domain.Appointment

	// 3. Все изменения выполняются в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3.1. Проверка прав доступа
		if !domain.CanUpdateAppointment(caller, appt) {
			uc.logger.Warn("UpdateAppointment: access denied for user=%d to appointment=%d",
				caller.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 3.2. Отменённый приём неизменяем
		if appt.IsCancelled() {
			uc.logger.Warn("UpdateAppointment: appointment id=%d is cancelled", req.AppointmentID)
			return fmt.Errorf("%w: appointment is cancelled", ErrInvalidStateTransition)
		}

		// 3.3. Перенос на другой слот
		if req.NewSlotID != nil && *req.NewSlotID != appt.SlotID {
			if err := uc.retargetSlot(txCtx, appt, *req.NewSlotID, now); err != nil {
				return err
			}
		}

		// 3.4. Смена состояния (только вперёд по жизненному циклу)
		if req.State != nil {
			if err := uc.transitionState(txCtx, appt, domain.AppointmentState(*req.State), now); err != nil {
				return err
			}
		}

		// 3.5. Метаданные приёма
		if req.Urgency != nil || req.VisitType != nil {
			var urgency *domain.Urgency
			if req.Urgency != nil {
				u := domain.Urgency(*req.Urgency)
				urgency = &u
				appt.Urgency = u
			}
			if req.VisitType != nil {
				appt.VisitType = *req.VisitType
			}

			if err := uc.apptRepo.UpdateMetadata(txCtx, appt.ID, urgency, req.VisitType); err != nil {
				return fmt.Errorf("%w: failed to update metadata: %v", ErrInternal, err)
			}
		}

		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment id=%d updated", result.ID)

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
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// retargetSlot переносит приём на другой слот: захватывает целевой и
// освобождает прежний. Прошедшие слоты не освобождаются - история приёма
// должна оставаться согласованной
func (uc *UseCase) retargetSlot(ctx context.Context, appt *domain.Appointment, newSlotID int64, now time.Time) error {
	newSlot, err := uc.slotRepo.GetByID(ctx, newSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("UpdateAppointment: target slot id=%d not found", newSlotID)
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: failed to get target slot: %v", ErrInternal, err)
	}

	if newSlot.IsCancelled() {
		return ErrSlotUnavailable
	}
	if newSlot.IsInPast(now) {
		return ErrSlotInPast
	}

	if err := uc.slotRepo.MarkBooked(ctx, newSlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotUnavailable) {
			uc.logger.Warn("UpdateAppointment: target slot id=%d already taken", newSlotID)
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: failed to mark target slot booked: %v", ErrInternal, err)
	}

	if err := uc.releaseSlotIfFuture(ctx, appt.SlotID, now); err != nil {
		return err
	}

	if err := uc.apptRepo.UpdateSlot(ctx, appt.ID, newSlotID); err != nil {
		return fmt.Errorf("%w: failed to retarget appointment: %v", ErrInternal, err)
	}

	// Тип приёма следует за слотом
	if appt.DeliveryMode != newSlot.DeliveryMode {
		if err := uc.apptRepo.UpdateDeliveryMode(ctx, appt.ID, newSlot.DeliveryMode); err != nil {
			return fmt.Errorf("%w: failed to sync delivery mode: %v", ErrInternal, err)
		}
		appt.DeliveryMode = newSlot.DeliveryMode
	}

	appt.SlotID = newSlotID
	return nil
}

// transitionState выполняет смену состояния приёма.
// Отмена освобождает слот, чтобы его можно было забронировать снова
func (uc *UseCase) transitionState(ctx context.Context, appt *domain.Appointment, next domain.AppointmentState, now time.Time) error {
	if !appt.CanTransitionTo(next) {
		uc.logger.Warn("UpdateAppointment: transition %s -> %s is not allowed", appt.State, next)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, appt.State, next)
	}

	if err := uc.apptRepo.UpdateState(ctx, appt.ID, next); err != nil {
		return fmt.Errorf("%w: failed to update state: %v", ErrInternal, err)
	}

	if next == domain.AppointmentStateCancelled {
		if err := uc.releaseSlotIfFuture(ctx, appt.SlotID, now); err != nil {
			return err
		}
	}

	appt.State = next
	return nil
}

// releaseSlotIfFuture возвращает слот в free, если он ещё не прошёл
func (uc *UseCase) releaseSlotIfFuture(ctx context.Context, slotID int64, now time.Time) error {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil
		}
		return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if !slot.IsBooked() || slot.IsInPast(now) {
		return nil
	}

	if err := uc.slotRepo.Release(ctx, slotID); err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
		return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
	}

	return nil
}

// resolveDoctorIdentity дополняет Caller идентификатором врача, если
// пользователь зарегистрирован как врач в PartyService
func (uc *UseCase) resolveDoctorIdentity(ctx context.Context, caller domain.Caller) domain.Caller {
	if caller.DoctorID != nil {
		return caller
	}

	doctor, err := uc.partyClient.GetDoctorByUser(ctx, caller.UserID)
	if err != nil {
		if !errors.Is(err, partyClient.ErrDoctorNotFound) {
			uc.logger.Warn("UpdateAppointment: failed to resolve doctor for user=%d: %v", caller.UserID, err)
		}
		return caller
	}

	caller.DoctorID = &doctor.ID
	return caller
}
