package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning time", input: "08:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "end of day boundary", input: "24:00"},
		{name: "missing leading zero", input: "8:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minutes", input: "10:61", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    TimeString
		minutes  int
		expected TimeString
		wantErr  bool
	}{
		{name: "simple step", start: "08:00", minutes: 60, expected: "09:00"},
		{name: "cross hour boundary", start: "09:45", minutes: 30, expected: "10:15"},
		{name: "reach end of day", start: "23:00", minutes: 60, expected: "24:00"},
		{name: "past end of day", start: "23:30", minutes: 60, wantErr: true},
		{name: "negative shift below zero", start: "00:30", minutes: -60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTimeString_MinutesUntil(t *testing.T) {
	open := TimeString("08:00")
	close := TimeString("22:00")

	minutes, err := open.MinutesUntil(close)
	require.NoError(t, err)
	assert.Equal(t, 840, minutes)

	// 24:00 работает как верхняя граница
	minutes, err = open.MinutesUntil("24:00")
	require.NoError(t, err)
	assert.Equal(t, 960, minutes)
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 11, 3, 15, 30, 45, 0, time.UTC)

	got, err := TimeString("08:00").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC), got)

	// 24:00 дает полночь следующего дня
	got, err = TimeString("24:00").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("22:00"))
	assert.False(t, TimeString("22:00").IsBefore("08:00"))
	assert.True(t, TimeString("22:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("08:00"))
}
