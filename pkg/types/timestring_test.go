package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid morning", "09:30", false},
		{"valid midnight", "00:00", false},
		{"valid evening", "23:59", false},
		{"invalid hour", "24:00", true},
		{"invalid minutes", "10:60", true},
		{"missing leading zero", "9:30", true},
		{"missing leading zero in minutes", "09:5", true},
		{"garbage", "abc", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	result, err := TimeString("10:00").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:20"), result)

	result, err = TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), result)

	// Смещение за полночь не поддерживается
	_, err = TimeString("23:50").AddMinutes(20)
	assert.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))

	minutes, err := TimeString("10:00").MinutesUntil("11:30")
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)

	instant, err := TimeString("10:20").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 11, 10, 20, 0, 0, time.UTC), instant)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Колонки TIME приходят с секундами
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 4, 11, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
