package book_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	slotStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
	"github.com/polyakovn/HMS-SchedulingService/pkg/ptr"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

type fakeSlotRepo struct {
	slots         map[int64]*domain.Slot
	markedBooked  []int64
	markBookedErr error
	synthesized   []*domain.Slot
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

func (f *fakeSlotRepo) FindFreeByDoctorDateTime(_ context.Context, doctorID int64, date time.Time, start types.TimeString) (*domain.Slot, error) {
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Date.Equal(date) && s.StartTime == start && s.IsFree() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, slotStorage.ErrSlotNotFound
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

func (f *fakeSlotRepo) InsertBatch(_ context.Context, slots []*domain.Slot) error {
	for i, s := range slots {
		s.ID = int64(1000 + len(f.synthesized) + i)
		f.slots[s.ID] = s
	}
	f.synthesized = append(f.synthesized, slots...)
	return nil
}

func (f *fakeSlotRepo) MarkBooked(_ context.Context, id int64) error {
	if f.markBookedErr != nil {
		return f.markBookedErr
	}
	f.slots[id].State = domain.SlotStateBooked
	f.markedBooked = append(f.markedBooked, id)
	return nil
}

type fakeApptRepo struct {
	created []*domain.Appointment
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = int64(len(f.created) + 1)
	appt.CreatedAt = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	appt.UpdatedAt = appt.CreatedAt
	f.created = append(f.created, appt)
	return appt, nil
}

type fakePartyClient struct {
	patientErr error
	doctorErr  error
}

func (f *fakePartyClient) GetDoctor(_ context.Context, doctorID int64) (*partyservice.Doctor, error) {
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	return &partyservice.Doctor{ID: doctorID, InstitutionID: 3, SpecialtyIDs: []int64{11, 12}}, nil
}

func (f *fakePartyClient) GetPatientByUser(_ context.Context, userID int64) (*partyservice.Patient, error) {
	if f.patientErr != nil {
		return nil, f.patientErr
	}
	return &partyservice.Patient{ID: 500, UserID: userID}, nil
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

func futureSlot() *domain.Slot {
	return &domain.Slot{
		ID:              42,
		DoctorID:        7,
		Date:            time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("10:30"),
		DurationMinutes: 30,
		DeliveryMode:    domain.DeliveryModeTelemedicine,
		State:           domain.SlotStateFree,
	}
}

func newBookingUseCase(slots *fakeSlotRepo, appts *fakeApptRepo, party *fakePartyClient) *UseCase {
	uc := NewUseCase(slots, appts, party, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestBookAppointment_BySlotID(t *testing.T) {
	slots := newFakeSlotRepo(futureSlot())
	appts := &fakeApptRepo{}
	uc := newBookingUseCase(slots, appts, &fakePartyClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 100,
		SlotID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.SlotID)
	assert.Equal(t, int64(500), resp.PatientID)
	assert.Equal(t, int64(7), resp.DoctorID)
	assert.Equal(t, int64(3), resp.InstitutionID)
	// Специальность по умолчанию - первая у врача
	assert.Equal(t, int64(11), resp.SpecialtyID)
	assert.Equal(t, "a", resp.Urgency)
	assert.Equal(t, "general", resp.VisitType)
	// Приём наследует формат слота
	assert.Equal(t, "telemedicine", resp.DeliveryMode)
	assert.Equal(t, "confirmed", resp.State)
	assert.Regexp(t, `^APP 2025/[0-9a-f]{6}$`, resp.Name)

	assert.Equal(t, []int64{42}, slots.markedBooked)
	require.Len(t, appts.created, 1)
	assert.Equal(t, int64(100), appts.created[0].CreatedBy)
}

func TestBookAppointment_SlotAlreadyTaken(t *testing.T) {
	slots := newFakeSlotRepo(futureSlot())
	// Условное обновление проиграло гонку
	slots.markBookedErr = slotStorage.ErrSlotUnavailable
	uc := newBookingUseCase(slots, &fakeApptRepo{}, &fakePartyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100,
		SlotID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookAppointment_CancelledSlot(t *testing.T) {
	slot := futureSlot()
	slot.State = domain.SlotStateCancelled
	slots := newFakeSlotRepo(slot)
	uc := newBookingUseCase(slots, &fakeApptRepo{}, &fakePartyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100,
		SlotID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookAppointment_SlotInPast(t *testing.T) {
	slot := futureSlot()
	slot.Date = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	slots := newFakeSlotRepo(slot)
	uc := newBookingUseCase(slots, &fakeApptRepo{}, &fakePartyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100,
		SlotID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestBookAppointment_SlotNotFound(t *testing.T) {
	uc := newBookingUseCase(newFakeSlotRepo(), &fakeApptRepo{}, &fakePartyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100,
		SlotID: ptr.Ptr(int64(999)),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookAppointment_ByDateTime_ExistingSlot(t *testing.T) {
	slots := newFakeSlotRepo(futureSlot())
	appts := &fakeApptRepo{}
	uc := newBookingUseCase(slots, appts, &fakePartyClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    100,
		DoctorID:  ptr.Ptr(int64(7)),
		Date:      ptr.Ptr(time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
		StartTime: ptr.Ptr(types.TimeString("10:00")),
	})
	require.NoError(t, err)

	// Нашёлся существующий свободный слот, новый не создавался
	assert.Equal(t, int64(42), resp.SlotID)
	assert.Empty(t, slots.synthesized)
}

func TestBookAppointment_ByDateTime_SynthesizesSlot(t *testing.T) {
	slots := newFakeSlotRepo()
	appts := &fakeApptRepo{}
	uc := newBookingUseCase(slots, appts, &fakePartyClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    100,
		DoctorID:  ptr.Ptr(int64(7)),
		Date:      ptr.Ptr(time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
		StartTime: ptr.Ptr(types.TimeString("15:00")),
	})
	require.NoError(t, err)

	require.Len(t, slots.synthesized, 1)
	created := slots.synthesized[0]
	assert.Equal(t, domain.SlotStateBooked, created.State)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, created.DurationMinutes)
	assert.Equal(t, types.TimeString("15:30"), created.EndTime)
	assert.Equal(t, domain.DeliveryModePhysical, created.DeliveryMode)
	assert.Equal(t, created.ID, resp.SlotID)
}

func TestBookAppointment_ByDateTime_OverlappingWindowRejected(t *testing.T) {
	// Занятый слот 10:00-10:30; legacy-запрос на 10:05 накрыл бы его
	slot := futureSlot()
	slot.State = domain.SlotStateBooked
	slots := newFakeSlotRepo(slot)
	uc := newBookingUseCase(slots, &fakeApptRepo{}, &fakePartyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    100,
		DoctorID:  ptr.Ptr(int64(7)),
		Date:      ptr.Ptr(time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
		StartTime: ptr.Ptr(types.TimeString("10:05")),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, slots.synthesized)
}

func TestBookAppointment_ByDateTime_TouchingWindowSynthesized(t *testing.T) {
	// Окно 10:30-11:00 касается занятого слота границей и не конфликтует
	slot := futureSlot()
	slot.State = domain.SlotStateBooked
	slots := newFakeSlotRepo(slot)
	uc := newBookingUseCase(slots, &fakeApptRepo{}, &fakePartyClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    100,
		DoctorID:  ptr.Ptr(int64(7)),
		Date:      ptr.Ptr(time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
		StartTime: ptr.Ptr(types.TimeString("10:30")),
	})
	require.NoError(t, err)
	require.Len(t, slots.synthesized, 1)
	assert.Equal(t, types.TimeString("11:00"), slots.synthesized[0].EndTime)
	assert.Equal(t, slots.synthesized[0].ID, resp.SlotID)
}

func TestBookAppointment_ByDateTime_PastDatetime(t *testing.T) {
	uc := newBookingUseCase(newFakeSlotRepo(), &fakeApptRepo{}, &fakePartyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    100,
		DoctorID:  ptr.Ptr(int64(7)),
		Date:      ptr.Ptr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		StartTime: ptr.Ptr(types.TimeString("10:00")),
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestBookAppointment_PatientNotFound(t *testing.T) {
	uc := newBookingUseCase(
		newFakeSlotRepo(futureSlot()),
		&fakeApptRepo{},
		&fakePartyClient{patientErr: partyservice.ErrPatientNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 100,
		SlotID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestBookAppointment_Validation(t *testing.T) {
	uc := newBookingUseCase(newFakeSlotRepo(), &fakeApptRepo{}, &fakePartyClient{})

	t.Run("neither slot nor datetime", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{UserID: 100})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("incomplete datetime triple", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			UserID:   100,
			DoctorID: ptr.Ptr(int64(7)),
			Date:     ptr.Ptr(time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid urgency", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			UserID:  100,
			SlotID:  ptr.Ptr(int64(42)),
			Urgency: ptr.Ptr("z"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBookAppointment_ExplicitOverrides(t *testing.T) {
	slots := newFakeSlotRepo(futureSlot())
	appts := &fakeApptRepo{}
	uc := newBookingUseCase(slots, appts, &fakePartyClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:      100,
		SlotID:      ptr.Ptr(int64(42)),
		Urgency:     ptr.Ptr("c"),
		VisitType:   ptr.Ptr("followup"),
		SpecialtyID: ptr.Ptr(int64(77)),
	})
	require.NoError(t, err)

	assert.Equal(t, "c", resp.Urgency)
	assert.Equal(t, "followup", resp.VisitType)
	assert.Equal(t, int64(77), resp.SpecialtyID)
}
