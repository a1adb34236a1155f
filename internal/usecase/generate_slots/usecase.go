package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	partyClient "github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

// UseCase use case для пакетной генерации слотов
type UseCase struct {
	slotRepo     SlotRepository
	partyClient  PartyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	partyClient PartyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		partyClient:  partyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute разворачивает диапазон дат и дневное окно времени в набор слотов.
// Неполный хвост окна отбрасывается; кандидаты, пересекающиеся с существующими
// неотменёнными слотами врача, пропускаются с подсчётом. Пакет вставляется в
// одной сериализуемой транзакции: либо все слоты пакета, либо ни одного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: doctor=%d, range=%s..%s, window=%s-%s, duration=%d",
		req.DoctorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация диапазона дат относительно текущего времени
	now := uc.timeProvider.Now()
	if err := validateDateRange(req.StartDate, req.EndDate, now); err != nil {
		uc.logger.Warn("GenerateSlots: date range validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем, что врач существует в PartyService
	if _, err := uc.partyClient.GetDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, partyClient.ErrDoctorNotFound) {
			uc.logger.Warn("GenerateSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	var created []*domain.Slot
	skipped := 0

	// 4. Генерация и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]
		skipped = 0

		startDate := truncateToDay(req.StartDate)
		endDate := truncateToDay(req.EndDate)

		for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
			// 4.1. Существующие неотменённые слоты дня читаются с блокировкой,
			// чтобы два генератора не вставили пересекающиеся пакеты
			existing, err := uc.slotRepo.ListByFilter(txCtx, domain.SlotFilter{
				DoctorID:         req.DoctorID,
				Date:             &date,
				ExcludeCancelled: true,
			})
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to list existing slots for %s: %v",
					date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to list existing slots: %v", ErrInternal, err)
			}

			// 4.2. Разворачиваем дневное окно в кандидатов
			candidates := expandDay(req, date)

			// 4.3. Пересекающиеся кандидаты пропускаются, остальные идут в пакет
			for _, candidate := range candidates {
				if overlapsAny(candidate, existing) {
					skipped++
					continue
				}
				created = append(created, candidate)
			}
		}

		// 4.4. Вставляем пакет одним запросом
		if err := uc.slotRepo.InsertBatch(txCtx, created); err != nil {
			uc.logger.Error("GenerateSlots: failed to insert batch of %d slots: %v", len(created), err)
			return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: doctor=%d created=%d skipped=%d", req.DoctorID, len(created), skipped)

	resp := &Response{
		Created: len(created),
		Skipped: skipped,
		Slots:   make([]GeneratedSlot, 0, len(created)),
	}
	for _, s := range created {
		resp.Slots = append(resp.Slots, GeneratedSlot{
			ID:        s.ID,
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return resp, nil
}

// expandDay разворачивает дневное окно в последовательность слотов-кандидатов.
// Последний кандидат, не помещающийся в окно целиком, отбрасывается.
func expandDay(req *Request, date time.Time) []*domain.Slot {
	candidates := make([]*domain.Slot, 0)

	cursor := req.StartTime
	for {
		end, err := cursor.AddMinutes(req.DurationMinutes)
		if err != nil {
			// Окно уперлось в полночь - дальше слоты не помещаются
			break
		}
		if end.IsAfter(req.EndTime) {
			break
		}

		candidates = append(candidates, &domain.Slot{
			DoctorID:        req.DoctorID,
			Date:            date,
			StartTime:       cursor,
			EndTime:         end,
			DurationMinutes: req.DurationMinutes,
			DeliveryMode:    domain.DeliveryMode(req.DeliveryMode),
			State:           domain.SlotStateFree,
		})

		cursor = end
	}

	return candidates
}

// overlapsAny проверяет пересечение кандидата с существующими слотами
func overlapsAny(candidate *domain.Slot, existing []*domain.Slot) bool {
	for _, s := range existing {
		if s.Overlaps(candidate.StartTime, candidate.EndTime) {
			return true
		}
	}
	return false
}
