package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

type fakeSlotRepo struct {
	byFilter      []*domain.Slot
	freeByDoctors []*domain.Slot

	gotDoctorIDs []int64
	gotFromDate  time.Time
}

func (f *fakeSlotRepo) ListByFilter(_ context.Context, _ domain.SlotFilter) ([]*domain.Slot, error) {
	return f.byFilter, nil
}

func (f *fakeSlotRepo) ListFreeByDoctors(_ context.Context, doctorIDs []int64, fromDate time.Time) ([]*domain.Slot, error) {
	f.gotDoctorIDs = doctorIDs
	f.gotFromDate = fromDate
	return f.freeByDoctors, nil
}

type fakePartyClient struct {
	doctorErr    error
	specialtyErr error
	doctors      []partyservice.Doctor
}

func (f *fakePartyClient) GetDoctor(_ context.Context, doctorID int64) (*partyservice.Doctor, error) {
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	return &partyservice.Doctor{ID: doctorID}, nil
}

func (f *fakePartyClient) GetDoctorsBySpecialty(_ context.Context, _ int64) ([]partyservice.Doctor, error) {
	if f.specialtyErr != nil {
		return nil, f.specialtyErr
	}
	return f.doctors, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func TestSearchByDoctorDate(t *testing.T) {
	repo := &fakeSlotRepo{byFilter: []*domain.Slot{
		{
			ID:              1,
			DoctorID:        7,
			Date:            time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("10:00"),
			EndTime:         types.TimeString("10:20"),
			DurationMinutes: 20,
			DeliveryMode:    domain.DeliveryModePhysical,
			State:           domain.SlotStateFree,
		},
	}}
	svc := NewService(repo, &fakePartyClient{}, nopLogger{})

	resp, err := svc.SearchByDoctorDate(context.Background(), 7, time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2025-04-11", resp.Slots[0].Date)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.Equal(t, "free", resp.Slots[0].State)
}

func TestSearchByDoctorDate_DoctorNotFound(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakePartyClient{doctorErr: partyservice.ErrDoctorNotFound}, nopLogger{})

	_, err := svc.SearchByDoctorDate(context.Background(), 99, time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestSearchByDoctorDate_Validation(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakePartyClient{}, nopLogger{})

	_, err := svc.SearchByDoctorDate(context.Background(), 0, time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SearchByDoctorDate(context.Background(), 7, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchBySpecialty(t *testing.T) {
	repo := &fakeSlotRepo{freeByDoctors: []*domain.Slot{
		{
			ID:        1,
			DoctorID:  7,
			Date:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("10:20"),
			State:     domain.SlotStateFree,
		},
	}}
	party := &fakePartyClient{doctors: []partyservice.Doctor{{ID: 7}, {ID: 8}}}
	svc := NewService(repo, party, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 4, 10, 15, 30, 0, 0, time.UTC)}

	resp, err := svc.SearchBySpecialty(context.Background(), 11)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, []int64{7, 8}, repo.gotDoctorIDs)
	// Нижняя граница выборки - начало текущего дня
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), repo.gotFromDate)
}

func TestSearchBySpecialty_NoDoctors(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakePartyClient{doctors: nil}, nopLogger{})

	resp, err := svc.SearchBySpecialty(context.Background(), 11)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestSearchBySpecialty_SpecialtyNotFound(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakePartyClient{specialtyErr: partyservice.ErrSpecialtyNotFound}, nopLogger{})

	_, err := svc.SearchBySpecialty(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSpecialtyNotFound)
}
