package delete_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	apptStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	slotStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	"github.com/polyakovn/HMS-SchedulingService/pkg/ptr"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

type fakeApptRepo struct {
	appts map[int64]*domain.Appointment
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apptStorage.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeApptRepo) UpdateState(_ context.Context, id int64, state domain.AppointmentState) error {
	f.appts[id].State = state
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotStorage.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotStorage.ErrSlotNotFound
	}
	slot.State = domain.SlotStateFree
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

func fixtures() (*fakeApptRepo, *fakeSlotRepo) {
	appts := &fakeApptRepo{appts: map[int64]*domain.Appointment{
		1: {
			ID:        1,
			SlotID:    42,
			PatientID: 500,
			DoctorID:  7,
			State:     domain.AppointmentStateConfirmed,
			CreatedBy: 100,
		},
	}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		42: {
			ID:        42,
			DoctorID:  7,
			Date:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("10:30"),
			State:     domain.SlotStateBooked,
		},
	}}
	return appts, slots
}

func newDeleteUseCase(appts *fakeApptRepo, slots *fakeSlotRepo) *UseCase {
	uc := NewUseCase(appts, slots, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestDeleteAppointment_OwnerReleasesFutureSlot(t *testing.T) {
	appts, slots := fixtures()
	uc := newDeleteUseCase(appts, slots)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Caller:        domain.Caller{UserID: 100, Role: domain.RolePatient},
	})
	require.NoError(t, err)

	assert.True(t, resp.SlotReleased)
	assert.Equal(t, domain.AppointmentStateCancelled, appts.appts[1].State)
	// Будущий слот вернулся в оборот
	assert.Equal(t, domain.SlotStateFree, slots.slots[42].State)
}

func TestDeleteAppointment_PastSlotKept(t *testing.T) {
	appts, slots := fixtures()
	uc := newDeleteUseCase(appts, slots)
	// Приём уже прошёл
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Caller:        domain.Caller{UserID: 100, Role: domain.RolePatient},
	})
	require.NoError(t, err)

	assert.False(t, resp.SlotReleased)
	assert.Equal(t, domain.AppointmentStateCancelled, appts.appts[1].State)
	assert.Equal(t, domain.SlotStateBooked, slots.slots[42].State)
}

func TestDeleteAppointment_DoctorDenied(t *testing.T) {
	appts, slots := fixtures()
	uc := newDeleteUseCase(appts, slots)

	// Назначенный врач может читать и менять запись, но не удалять её
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Caller:        domain.Caller{UserID: 200, Role: domain.RoleDoctor, DoctorID: ptr.Ptr(int64(7))},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.AppointmentStateConfirmed, appts.appts[1].State)
}

func TestDeleteAppointment_StrangerDenied(t *testing.T) {
	appts, slots := fixtures()
	uc := newDeleteUseCase(appts, slots)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Caller:        domain.Caller{UserID: 999, Role: domain.RolePatient},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteAppointment_AlreadyCancelled(t *testing.T) {
	appts, slots := fixtures()
	appts.appts[1].State = domain.AppointmentStateCancelled
	uc := newDeleteUseCase(appts, slots)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Caller:        domain.Caller{UserID: 100, Role: domain.RolePatient},
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDeleteAppointment_NotFound(t *testing.T) {
	appts, slots := fixtures()
	uc := newDeleteUseCase(appts, slots)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 99,
		Caller:        domain.Caller{UserID: 100, Role: domain.RolePatient},
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
