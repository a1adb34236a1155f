package shift_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	slotStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	repo := &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
	for _, s := range slots {
		repo.slots[s.ID] = s
	}
	return repo
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) FindOverlapping(_ context.Context, doctorID int64, date time.Time, start, end types.TimeString, excludeID *int64) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0)
	for _, s := range f.slots {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if s.DoctorID != doctorID || !s.Date.Equal(date) || s.IsCancelled() {
			continue
		}
		if s.StartTime.IsBefore(end) && start.IsBefore(s.EndTime) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSlotRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, start, end types.TimeString) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotStorage.ErrSlotNotFound
	}
	slot.Date = date
	slot.StartTime = start
	slot.EndTime = end
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookedSlot(id int64, start, end string) *domain.Slot {
	return &domain.Slot{
		ID:              id,
		DoctorID:        7,
		Date:            time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		DurationMinutes: 30,
		DeliveryMode:    domain.DeliveryModePhysical,
		State:           domain.SlotStateBooked,
	}
}

func newShiftUseCase(repo *fakeSlotRepo) *UseCase {
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestShiftSlot_MoveInPlace(t *testing.T) {
	repo := newFakeSlotRepo(bookedSlot(42, "10:00", "10:30"))
	uc := newShiftUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)

	// Перенос на месте: ID и состояние сохраняются, конец пересчитан
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "booked", resp.State)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("14:30"), resp.EndTime)
	assert.Equal(t, time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC), repo.slots[42].Date)
}

func TestShiftSlot_RoundTrip(t *testing.T) {
	repo := newFakeSlotRepo(bookedSlot(42, "10:00", "10:30"))
	uc := newShiftUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)

	// Обратный перенос на исходное время не конфликтует сам с собой
	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
}

func TestShiftSlot_Conflict(t *testing.T) {
	repo := newFakeSlotRepo(
		bookedSlot(42, "10:00", "10:30"),
		bookedSlot(43, "14:00", "14:30"),
	)
	uc := newShiftUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("14:15"),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Слот остался на месте
	assert.Equal(t, types.TimeString("10:00"), repo.slots[42].StartTime)
}

func TestShiftSlot_TouchingWindowAllowed(t *testing.T) {
	repo := newFakeSlotRepo(
		bookedSlot(42, "10:00", "10:30"),
		bookedSlot(43, "14:00", "14:30"),
	)
	uc := newShiftUseCase(repo)

	// Окно 14:30-15:00 касается соседа границей и не конфликтует
	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("14:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
}

func TestShiftSlot_TargetInPast(t *testing.T) {
	repo := newFakeSlotRepo(bookedSlot(42, "10:00", "10:30"))
	uc := newShiftUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrTargetInPast)
}

func TestShiftSlot_CancelledSlot(t *testing.T) {
	slot := bookedSlot(42, "10:00", "10:30")
	slot.State = domain.SlotStateCancelled
	uc := newShiftUseCase(newFakeSlotRepo(slot))

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrSlotCancelled)
}

func TestShiftSlot_NotFound(t *testing.T) {
	uc := newShiftUseCase(newFakeSlotRepo())

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       99,
		NewDate:      time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestShiftSlot_MidnightCrossing(t *testing.T) {
	uc := newShiftUseCase(newFakeSlotRepo(bookedSlot(42, "10:00", "10:30")))

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:       42,
		NewDate:      time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("23:45"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
