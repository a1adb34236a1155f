package cancel_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

type fakeSlotRepo struct {
	states map[int64]domain.SlotState
}

func (f *fakeSlotRepo) CancelByIDs(_ context.Context, ids []int64) ([]int64, error) {
	cancelled := make([]int64, 0)
	for _, id := range ids {
		state, ok := f.states[id]
		if !ok || state == domain.SlotStateCancelled {
			continue
		}
		f.states[id] = domain.SlotStateCancelled
		cancelled = append(cancelled, id)
	}
	return cancelled, nil
}

type fakeApptRepo struct {
	cancelledFor [][]int64
	perSlot      map[int64]int64
}

func (f *fakeApptRepo) CancelBySlotIDs(_ context.Context, slotIDs []int64) (int64, error) {
	f.cancelledFor = append(f.cancelledFor, slotIDs)
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

func TestCancelSlots_CascadesToAppointments(t *testing.T) {
	slots := &fakeSlotRepo{states: map[int64]domain.SlotState{
		1: domain.SlotStateFree,
		2: domain.SlotStateBooked,
		3: domain.SlotStateCancelled,
	}}
	appts := &fakeApptRepo{perSlot: map[int64]int64{2: 1}}
	uc := NewUseCase(slots, appts, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{1, 2, 3}})
	require.NoError(t, err)

	// Уже отменённый слот 3 не попадает ни в счётчик, ни в каскад
	assert.Equal(t, 2, resp.CancelledSlots)
	assert.Equal(t, int64(1), resp.CancelledAppointments)
	require.Len(t, appts.cancelledFor, 1)
	assert.ElementsMatch(t, []int64{1, 2}, appts.cancelledFor[0])
}

func TestCancelSlots_Idempotent(t *testing.T) {
	slots := &fakeSlotRepo{states: map[int64]domain.SlotState{
		1: domain.SlotStateBooked,
	}}
	appts := &fakeApptRepo{perSlot: map[int64]int64{1: 1}}
	uc := NewUseCase(slots, appts, &fakeTxManager{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, 1, first.CancelledSlots)
	assert.Equal(t, int64(1), first.CancelledAppointments)

	// Повторная отмена возвращает нулевые счётчики
	second, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, 0, second.CancelledSlots)
	assert.Equal(t, int64(0), second.CancelledAppointments)
}

func TestCancelSlots_UnknownIDsSkipped(t *testing.T) {
	slots := &fakeSlotRepo{states: map[int64]domain.SlotState{}}
	appts := &fakeApptRepo{perSlot: map[int64]int64{}}
	uc := NewUseCase(slots, appts, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{7, 8}})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CancelledSlots)
}

func TestCancelSlots_Validation(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeApptRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SlotIDs: nil})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SlotIDs: []int64{1, -2}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
