package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"10:00", false},
		{"19:30", false},
		{"00:00", false},
		{"9:00", true},
		{"24:00", true},
		{"10:60", true},
		{"abc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutesAndCompare(t *testing.T) {
	start := TimeString("10:00")

	next, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), next)
	assert.True(t, start.IsBefore(next))
	assert.True(t, next.IsAfter(start))

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestFromHour(t *testing.T) {
	assert.Equal(t, TimeString("09:00"), FromHour(9))
	assert.Equal(t, TimeString("19:00"), FromHour(19))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("15:45").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 15, 45, 0, 0, loc), at)
}

func TestTimeString_ScanAndJSON(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("12:00")))
	assert.Equal(t, TimeString("12:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	var payload struct {
		Time TimeString `json:"time"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"time":"18:00"}`), &payload))
	assert.Equal(t, TimeString("18:00"), payload.Time)

	assert.Error(t, json.Unmarshal([]byte(`{"time":"18"}`), &payload))
}
