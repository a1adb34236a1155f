package cancel_slots_by_date

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/pkg/ptr"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (f *fakeSlotRepo) CancelByDate(_ context.Context, date time.Time, doctorID *int64) ([]int64, error) {
	cancelled := make([]int64, 0)
	for _, s := range f.slots {
		if !s.Date.Equal(date) || s.IsCancelled() {
			continue
		}
		if doctorID != nil && s.DoctorID != *doctorID {
			continue
		}
		s.State = domain.SlotStateCancelled
		cancelled = append(cancelled, s.ID)
	}
	return cancelled, nil
}

type fakeApptRepo struct {
	perSlot map[int64]int64
}

func (f *fakeApptRepo) CancelBySlotIDs(_ context.Context, slotIDs []int64) (int64, error) {
	var total int64
	for _, id := range slotIDs {
		total += f.perSlot[id]
	}
	return total, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func daySlot(id, doctorID int64, date time.Time, state domain.SlotState) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		DoctorID:  doctorID,
		Date:      date,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("10:30"),
		State:     state,
	}
}

func TestCancelSlotsByDate_WholeDay(t *testing.T) {
	date := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)

	slots := &fakeSlotRepo{slots: []*domain.Slot{
		daySlot(1, 7, date, domain.SlotStateFree),
		daySlot(2, 8, date, domain.SlotStateBooked),
		daySlot(3, 7, date, domain.SlotStateCancelled),
		daySlot(4, 7, otherDate, domain.SlotStateFree),
	}}
	appts := &fakeApptRepo{perSlot: map[int64]int64{2: 1}}
	uc := NewUseCase(slots, appts, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	// Уже отменённый слот и слоты другого дня не затрагиваются
	assert.Equal(t, 2, resp.CancelledSlots)
	assert.Equal(t, int64(1), resp.CancelledAppointments)
	assert.Equal(t, domain.SlotStateFree, slots.slots[3].State)
}

func TestCancelSlotsByDate_ScopedToDoctor(t *testing.T) {
	date := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		daySlot(1, 7, date, domain.SlotStateFree),
		daySlot(2, 8, date, domain.SlotStateBooked),
	}}
	appts := &fakeApptRepo{perSlot: map[int64]int64{}}
	uc := NewUseCase(slots, appts, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: date, DoctorID: ptr.Ptr(int64(7))})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CancelledSlots)
	assert.Equal(t, domain.SlotStateBooked, slots.slots[1].State)
}

func TestCancelSlotsByDate_Idempotent(t *testing.T) {
	date := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		daySlot(1, 7, date, domain.SlotStateBooked),
	}}
	appts := &fakeApptRepo{perSlot: map[int64]int64{1: 1}}
	uc := NewUseCase(slots, appts, &fakeTxManager{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Equal(t, 1, first.CancelledSlots)

	second, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Equal(t, 0, second.CancelledSlots)
	assert.Equal(t, int64(0), second.CancelledAppointments)
}

func TestCancelSlotsByDate_Validation(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeApptRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date:     time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		DoctorID: ptr.Ptr(int64(0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
