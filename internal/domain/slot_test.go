package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polyakovn/HMS-SchedulingService/pkg/types"
)

func TestSlot_Overlaps(t *testing.T) {
	slot := &Slot{
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("10:20"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical window", "10:00", "10:20", true},
		{"contained window", "10:05", "10:15", true},
		{"overlap from left", "09:50", "10:10", true},
		{"overlap from right", "10:10", "10:30", true},
		{"touching left boundary", "09:40", "10:00", false},
		{"touching right boundary", "10:20", "10:40", false},
		{"disjoint", "11:00", "11:20", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slot.Overlaps(types.TimeString(tt.start), types.TimeString(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlot_IsInPast(t *testing.T) {
	now := time.Date(2025, 4, 11, 12, 0, 0, 0, time.UTC)

	past := &Slot{
		Date:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
	assert.True(t, past.IsInPast(now))

	future := &Slot{
		Date:      time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	}
	assert.False(t, future.IsInPast(now))
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	appt := &Appointment{State: AppointmentStateFree}
	assert.True(t, appt.CanTransitionTo(AppointmentStateConfirmed))
	assert.True(t, appt.CanTransitionTo(AppointmentStateCancelled))

	appt.State = AppointmentStateConfirmed
	assert.False(t, appt.CanTransitionTo(AppointmentStateFree))
	assert.True(t, appt.CanTransitionTo(AppointmentStateCancelled))

	// Отмена терминальна
	appt.State = AppointmentStateCancelled
	assert.False(t, appt.CanTransitionTo(AppointmentStateFree))
	assert.False(t, appt.CanTransitionTo(AppointmentStateConfirmed))
}
