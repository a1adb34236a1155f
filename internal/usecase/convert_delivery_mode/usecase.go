package convert_delivery_mode

import (
	"context"
	"errors"
	"fmt"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	apptRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
)

// UseCase use case для смены типа приёма слота
type UseCase struct {
	slotRepo  SlotRepository
	apptRepo  AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		apptRepo:  apptRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute переключает тип приёма слота между очным и телемедициной.
// Если к слоту привязан активный приём, его тип каскадно обновляется -
// слот и приём никогда не расходятся по типу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConvertDeliveryMode: slot=%d, mode=%s", req.SlotID, req.Mode)

	// 1. Валидация входных данных
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	mode := domain.DeliveryMode(req.Mode)
	if !domain.ValidDeliveryMode(mode) {
		return nil, fmt.Errorf("%w: unknown delivery mode %q", ErrInvalidInput, req.Mode)
	}

	apptUpdated := false

	// 2. Конвертация слота и каскад по приёму в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		apptUpdated = false

		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ConvertDeliveryMode: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.1. Отменённый слот не конвертируется
		if slot.IsCancelled() {
			uc.logger.Warn("ConvertDeliveryMode: slot id=%d is cancelled", req.SlotID)
			return ErrSlotCancelled
		}

		// 2.2. Повторная конвертация в тот же тип - no-op
		if slot.DeliveryMode == mode {
			return nil
		}

		if err := uc.slotRepo.UpdateDeliveryMode(txCtx, slot.ID, mode); err != nil {
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		// 2.3. Каскад на привязанный активный приём
		appt, err := uc.apptRepo.GetActiveBySlotID(txCtx, slot.ID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return nil
			}
			return fmt.Errorf("%w: failed to get bound appointment: %v", ErrInternal, err)
		}

		if err := uc.apptRepo.UpdateDeliveryMode(txCtx, appt.ID, mode); err != nil {
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		apptUpdated = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConvertDeliveryMode: slot id=%d -> %s, appointment updated=%t",
		req.SlotID, req.Mode, apptUpdated)

	return &Response{
		SlotID:             req.SlotID,
		DeliveryMode:       req.Mode,
		AppointmentUpdated: apptUpdated,
	}, nil
}
