package delete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
)

// UseCase use case для удаления приёма
type UseCase struct {
	apptRepo     AppointmentRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case удаления приёма.
// Удалять запись может только её владелец; назначенному врачу операция
// недоступна. Удаление реализовано как отмена: приём переходит в cancelled,
// а будущий слот возвращается в free
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteAppointment: appointment=%d, user=%d", req.AppointmentID, req.Caller.UserID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Caller.UserID <= 0 {
		return nil, fmt.Errorf("%w: caller userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	released := false

	// 2. Отмена приёма и освобождение слота в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		released = false

		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("DeleteAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Удалять может только владелец записи
		if !domain.CanDeleteAppointment(req.Caller, appt) {
			uc.logger.Warn("DeleteAppointment: access denied for user=%d to appointment=%d",
				req.Caller.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 2.2. Уже отменённый приём для клиента не существует
		if appt.IsCancelled() {
			uc.logger.Warn("DeleteAppointment: appointment id=%d is already cancelled", req.AppointmentID)
			return ErrAppointmentNotFound
		}

		if err := uc.apptRepo.UpdateState(txCtx, appt.ID, domain.AppointmentStateCancelled); err != nil {
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		// 2.3. Будущий слот возвращается в оборот, прошедший остаётся как есть
		slot, err := uc.slotRepo.GetByID(txCtx, appt.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return nil
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.IsBooked() && !slot.IsInPast(now) {
			if err := uc.slotRepo.Release(txCtx, slot.ID); err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
			released = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeleteAppointment: appointment id=%d cancelled, slot released=%t",
		req.AppointmentID, released)

	return &Response{
		ID:           req.AppointmentID,
		SlotReleased: released,
	}, nil
}
