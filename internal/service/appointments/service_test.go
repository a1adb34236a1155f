package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
	apptStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	slotStorage "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	"github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
)

type fakeApptRepo struct {
	appts     map[int64]*domain.Appointment
	byPatient []*domain.Appointment
	gotDate   *time.Time
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apptStorage.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) ListByPatient(_ context.Context, _ int64, date *time.Time) ([]*domain.Appointment, error) {
	f.gotDate = date
	return f.byPatient, nil
}

type fakeSlotRepo struct{}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	return nil, slotStorage.ErrSlotNotFound
}

type fakePartyClient struct {
	doctorID   *int64
	patientErr error
}

func (f *fakePartyClient) GetDoctorByUser(_ context.Context, _ int64) (*partyservice.Doctor, error) {
	if f.doctorID == nil {
		return nil, partyservice.ErrDoctorNotFound
	}
	return &partyservice.Doctor{ID: *f.doctorID}, nil
}

func (f *fakePartyClient) GetPatientByUser(_ context.Context, userID int64) (*partyservice.Patient, error) {
	if f.patientErr != nil {
		return nil, f.patientErr
	}
	return &partyservice.Patient{ID: 500, UserID: userID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func apptFixture() *domain.Appointment {
	return &domain.Appointment{
		ID:           1,
		Name:         "APP 2025/a1b2c3",
		SlotID:       42,
		PatientID:    500,
		DoctorID:     7,
		Urgency:      domain.UrgencyNormal,
		VisitType:    "general",
		DeliveryMode: domain.DeliveryModePhysical,
		State:        domain.AppointmentStateConfirmed,
		CreatedBy:    100,
	}
}

func TestGetByID_Owner(t *testing.T) {
	repo := &fakeApptRepo{appts: map[int64]*domain.Appointment{1: apptFixture()}}
	svc := NewService(repo, &fakeSlotRepo{}, &fakePartyClient{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, domain.Caller{UserID: 100, Role: domain.RolePatient})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "APP 2025/a1b2c3", resp.Name)
	assert.Equal(t, "confirmed", resp.State)
}

func TestGetByID_AssignedDoctorResolvedFromUser(t *testing.T) {
	repo := &fakeApptRepo{appts: map[int64]*domain.Appointment{1: apptFixture()}}
	doctorID := int64(7)
	svc := NewService(repo, &fakeSlotRepo{}, &fakePartyClient{doctorID: &doctorID}, nopLogger{})

	// Заголовки не несут DoctorID - он дорезолвливается через PartyService
	resp, err := svc.GetByID(context.Background(), 1, domain.Caller{UserID: 200, Role: domain.RoleDoctor})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.DoctorID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeApptRepo{appts: map[int64]*domain.Appointment{1: apptFixture()}}
	svc := NewService(repo, &fakeSlotRepo{}, &fakePartyClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, domain.Caller{UserID: 999, Role: domain.RolePatient})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeApptRepo{appts: map[int64]*domain.Appointment{}}
	svc := NewService(repo, &fakeSlotRepo{}, &fakePartyClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99, domain.Caller{UserID: 100, Role: domain.RolePatient})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListPatientAppointments(t *testing.T) {
	repo := &fakeApptRepo{byPatient: []*domain.Appointment{apptFixture()}}
	svc := NewService(repo, &fakeSlotRepo{}, &fakePartyClient{}, nopLogger{})

	date := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	resp, err := svc.ListPatientAppointments(context.Background(), domain.Caller{UserID: 100}, &date)
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.gotDate)
	assert.Equal(t, date, *repo.gotDate)
}

func TestListPatientAppointments_NotAPatient(t *testing.T) {
	svc := NewService(&fakeApptRepo{}, &fakeSlotRepo{}, &fakePartyClient{patientErr: partyservice.ErrPatientNotFound}, nopLogger{})

	_, err := svc.ListPatientAppointments(context.Background(), domain.Caller{UserID: 100}, nil)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
