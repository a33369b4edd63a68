package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestParseClock_MarkedTwelveHour(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
	}{
		{"오전 09:30", 9, 30},
		{"오후 09:30", 21, 30},
		{"오전 12:15", 0, 15},
		{"오후 12:15", 12, 15},
		{"  오후 01:05 ", 13, 5},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input, base)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.hour, got.Hour(), tt.input)
		assert.Equal(t, tt.minute, got.Minute(), tt.input)
		assert.Equal(t, base.Year(), got.Year())
		assert.Equal(t, base.Month(), got.Month())
		assert.Equal(t, base.Day(), got.Day())
	}
}

func TestParseClock_TwentyFourHourFallback(t *testing.T) {
	got, err := ParseClock("18:45", base)
	require.NoError(t, err)
	assert.Equal(t, 18, got.Hour())
	assert.Equal(t, 45, got.Minute())
}

func TestParseClock_Unparseable(t *testing.T) {
	for _, input := range []string{"", "lunch", "25:00", "오후 99:99", "9am"} {
		_, err := ParseClock(input, base)
		require.Error(t, err, input)

		var tfe *TimeFormatError
		require.ErrorAs(t, err, &tfe, input)
		assert.Equal(t, input, tfe.Input)
	}
}

func TestParseClock_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	seoulBase := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	got, err := ParseClock("오후 03:00", seoulBase)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 15, got.Hour())
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 9, 6, 40, 0, time.UTC), "오전 09:06"},
		{time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), "오전 12:05"},
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "오후 12:00"},
		{time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), "오후 11:59"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.t))
	}
}

func TestFormatClock_RoundTripsThroughParseClock(t *testing.T) {
	orig := time.Date(2024, 3, 10, 17, 20, 0, 0, time.UTC)

	parsed, err := ParseClock(FormatClock(orig), orig)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
}
