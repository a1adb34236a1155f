package cancel_slots_by_date

import (
	"context"
	"fmt"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

// UseCase use case для отмены всех слотов на дату
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

// Execute отменяет все неотменённые слоты на дату и каскадно отменяет
// привязанные к ним активные приёмы. При заданном DoctorID операция
// ограничивается слотами этого врача. Идемпотентна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSlotsByDate: date=%s, doctor=%v",
		req.Date.Format(domain.DateFormat), req.DoctorID)

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DoctorID != nil && *req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	var (
		cancelledIDs   []int64
		cancelledAppts int64
	)

	// 2. Отмена слотов дня и каскад по приёмам в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		cancelledIDs, err = uc.slotRepo.CancelByDate(txCtx, req.Date, req.DoctorID)
		if err != nil {
			uc.logger.Error("CancelSlotsByDate: failed to cancel slots: %v", err)
			return fmt.Errorf("%w: failed to cancel slots: %v", ErrInternal, err)
		}

		cancelledAppts, err = uc.apptRepo.CancelBySlotIDs(txCtx, cancelledIDs)
		if err != nil {
			uc.logger.Error("CancelSlotsByDate: failed to cancel appointments: %v", err)
			return fmt.Errorf("%w: failed to cancel appointments: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSlotsByDate: %s - cancelled %d slot(s), %d appointment(s)",
		req.Date.Format(domain.DateFormat), len(cancelledIDs), cancelledAppts)

	return &Response{
		CancelledSlots:        len(cancelledIDs),
		CancelledAppointments: cancelledAppts,
	}, nil
}
