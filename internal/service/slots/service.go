package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	partyClient "github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
	"github.com/polyakovn/HMS-SchedulingService/internal/service/slots/models"
)

// Service сервис поиска доступности
// Только чтение: никогда не мутирует состояние хранилища и всегда читает
// последнее зафиксированное состояние (без промежуточных кешей)
type Service struct {
	slotRepo     SlotRepository
	partyClient  PartyServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса поиска
func NewService(
	slotRepo SlotRepository,
	partyClient PartyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		partyClient:  partyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SearchByDoctorDate получает все слоты врача на дату, упорядоченные по времени
// начала, с текущим состоянием каждого слота
func (s *Service) SearchByDoctorDate(ctx context.Context, doctorID int64, date time.Time) (*models.SlotListResponse, error) {
	s.logger.Info("SearchByDoctorDate: doctor=%d, date=%s", doctorID, date.Format(domain.DateFormat))

	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что врач существует в PartyService
	if _, err := s.partyClient.GetDoctor(ctx, doctorID); err != nil {
		if errors.Is(err, partyClient.ErrDoctorNotFound) {
			s.logger.Warn("SearchByDoctorDate: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("SearchByDoctorDate: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.ListByFilter(ctx, domain.SlotFilter{
		DoctorID: doctorID,
		Date:     &date,
	})
	if err != nil {
		s.logger.Error("SearchByDoctorDate: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: SearchByDoctorDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SearchByDoctorDate: found %d slots for doctor=%d on %s",
		len(slots), doctorID, date.Format(domain.DateFormat))
	return models.FromDomainSlotList(slots), nil
}

// SearchBySpecialty получает свободные будущие слоты всех врачей с указанной
// специальностью, упорядоченные по (дата, время начала)
func (s *Service) SearchBySpecialty(ctx context.Context, specialtyID int64) (*models.SlotListResponse, error) {
	s.logger.Info("SearchBySpecialty: specialty=%d", specialtyID)

	if specialtyID <= 0 {
		return nil, fmt.Errorf("%w: specialtyID must be positive", ErrInvalidInput)
	}

	doctors, err := s.partyClient.GetDoctorsBySpecialty(ctx, specialtyID)
	if err != nil {
		if errors.Is(err, partyClient.ErrSpecialtyNotFound) {
			s.logger.Warn("SearchBySpecialty: specialty id=%d not found", specialtyID)
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("SearchBySpecialty: failed to resolve doctors for specialty=%d: %v", specialtyID, err)
		return nil, fmt.Errorf("%w: failed to resolve doctors: %v", ErrInternal, err)
	}

	if len(doctors) == 0 {
		return &models.SlotListResponse{Slots: []models.SlotResponse{}}, nil
	}

	doctorIDs := make([]int64, len(doctors))
	for i, d := range doctors {
		doctorIDs[i] = d.ID
	}

	// Прошедшие даты остаются читаемыми для аудита, но для бронирования
	// интересны только слоты начиная с сегодняшнего дня
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots, err := s.slotRepo.ListFreeByDoctors(ctx, doctorIDs, today)
	if err != nil {
		s.logger.Error("SearchBySpecialty: repository error for specialty=%d: %v", specialtyID, err)
		return nil, fmt.Errorf("%w: SearchBySpecialty - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SearchBySpecialty: found %d free slots across %d doctors for specialty=%d",
		len(slots), len(doctorIDs), specialtyID)
	return models.FromDomainSlotList(slots), nil
}
