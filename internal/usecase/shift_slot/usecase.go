package shift_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	slotRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	"github.com/polyakovn/HMS-SchedulingService/pkg/ptr"
)

// UseCase use case для переноса слота
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит слот на новые дату и время на месте: ID и состояние
// слота сохраняются, поэтому привязанный приём автоматически следует за
// слотом. Целевое окно не должно пересекаться с другими слотами врача
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ShiftSlot: slot=%d, target=%s %s",
		req.SlotID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ShiftSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Slot

	// 2. Проверка конфликтов и перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ShiftSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.1. Отменённый слот не переносится
		if slot.IsCancelled() {
			uc.logger.Warn("ShiftSlot: slot id=%d is cancelled", req.SlotID)
			return ErrSlotCancelled
		}

		// 2.2. Длительность сохраняется, конец вычисляется от нового начала
		newEnd, err := req.NewStartTime.AddMinutes(slot.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: target window crosses midnight: %v", ErrInvalidInput, err)
		}

		// 2.3. Целевое время не должно быть в прошлом
		targetStart, err := req.NewStartTime.On(req.NewDate)
		if err != nil {
			return fmt.Errorf("%w: invalid target time: %v", ErrInvalidInput, err)
		}
		if targetStart.Before(now) {
			uc.logger.Warn("ShiftSlot: target %s is in the past", targetStart)
			return ErrTargetInPast
		}

		// 2.4. Целевое окно проверяется на пересечения, сам слот исключается
		overlapping, err := uc.slotRepo.FindOverlapping(
			txCtx, slot.DoctorID, req.NewDate, req.NewStartTime, newEnd, ptr.Ptr(slot.ID))
		if err != nil {
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("ShiftSlot: target window conflicts with %d slot(s)", len(overlapping))
			return ErrSlotConflict
		}

		if err := uc.slotRepo.UpdateSchedule(txCtx, slot.ID, req.NewDate, req.NewStartTime, newEnd); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		slot.Date = req.NewDate
		slot.StartTime = req.NewStartTime
		slot.EndTime = newEnd
		result = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ShiftSlot: slot id=%d moved to %s %s-%s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime, result.EndTime)

	return &Response{
		ID:              result.ID,
		DoctorID:        result.DoctorID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		DeliveryMode:    string(result.DeliveryMode),
		State:           string(result.State),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
