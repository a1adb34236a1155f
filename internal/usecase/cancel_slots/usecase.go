package cancel_slots

import (
	"context"
	"fmt"
)

// UseCase use case для отмены слотов по списку ID
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

// Execute отменяет слоты и каскадно отменяет привязанные к ним активные
// приёмы. Операция идемпотентна: повторная отмена тех же слотов вернёт
// нулевые счётчики. Несуществующие ID молча пропускаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSlots: %d slot id(s) requested", len(req.SlotIDs))

	// 1. Валидация входных данных
	if len(req.SlotIDs) == 0 {
		return nil, fmt.Errorf("%w: slotIDs must not be empty", ErrInvalidInput)
	}
	for _, id := range req.SlotIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: slot id must be positive, got %d", ErrInvalidInput, id)
		}
	}

	var (
		cancelledIDs   []int64
		cancelledAppts int64
	)

	// 2. Отмена слотов и каскад по приёмам в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		cancelledIDs, err = uc.slotRepo.CancelByIDs(txCtx, req.SlotIDs)
		if err != nil {
			uc.logger.Error("CancelSlots: failed to cancel slots: %v", err)
			return fmt.Errorf("%w: failed to cancel slots: %v", ErrInternal, err)
		}

		// Каскад затрагивает только реально отменённые слоты
		cancelledAppts, err = uc.apptRepo.CancelBySlotIDs(txCtx, cancelledIDs)
		if err != nil {
			uc.logger.Error("CancelSlots: failed to cancel appointments: %v", err)
			return fmt.Errorf("%w: failed to cancel appointments: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSlots: cancelled %d slot(s), %d appointment(s)",
		len(cancelledIDs), cancelledAppts)

	return &Response{
		CancelledSlots:        len(cancelledIDs),
		CancelledAppointments: cancelledAppts,
	}, nil
}
