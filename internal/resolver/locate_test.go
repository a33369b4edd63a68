package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/pkg/timeutil"
)

func sample(elapsed int64, lat, lon float64) domain.TimelinePoint {
	return domain.TimelinePoint{
		ElapsedSeconds: elapsed,
		Coordinate:     domain.Coordinate{Lat: lat, Lon: lon},
	}
}

func TestNearestSample_MinimumDistance(t *testing.T) {
	timeline := []domain.TimelinePoint{
		sample(0, 1, 1),   // A
		sample(100, 2, 2), // B
		sample(300, 3, 3), // C
	}

	// Target 150: B at distance 50 beats C at distance 150.
	got := nearestSample(timeline, 150)
	assert.Equal(t, domain.Coordinate{Lat: 2, Lon: 2}, got.Coordinate)
}

func TestNearestSample_ExactHit(t *testing.T) {
	timeline := []domain.TimelinePoint{
		sample(0, 1, 1),
		sample(100, 2, 2),
		sample(200, 3, 3),
	}

	got := nearestSample(timeline, 100)
	assert.Equal(t, domain.Coordinate{Lat: 2, Lon: 2}, got.Coordinate)
}

func TestNearestSample_TieGoesToEarliest(t *testing.T) {
	timeline := []domain.TimelinePoint{
		sample(0, 1, 1),
		sample(100, 2, 2),
		sample(200, 3, 3),
	}

	// Target 150 is equidistant from 100 and 200: first-encountered wins.
	got := nearestSample(timeline, 150)
	assert.Equal(t, int64(100), got.ElapsedSeconds)
}

func TestLocateSlots_PreDepartureRollsToNextDay(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	timeline := []domain.TimelinePoint{
		sample(0, 1, 1),
		sample(23*3600, 2, 2), // 23h into the route: 08:00 next day
	}

	// 08:00 precedes a 09:00 departure, so the slot is tomorrow morning
	// (offset 82800s), closest to the late sample.
	results := LocateSlots(timeline, []domain.MealSlot{
		{ID: "slot-1", ScheduledTime: "오전 08:00"},
	}, departure, zap.NewNop())

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Location)
	assert.Equal(t, 2.0, results[0].Location.Lat)
}

func TestLocationForOffset_NegativeFallsBackToOrigin(t *testing.T) {
	timeline := []domain.TimelinePoint{
		sample(0, 37.5, 127.1),
		sample(600, 37.6, 127.2),
	}

	// A slot predating travel resolves to the route origin, never an error.
	location := locationForOffset(timeline, "slot-1", -100)
	require.NotNil(t, location)
	assert.Equal(t, "slot-1", location.SlotID)
	assert.Equal(t, 37.5, location.Lat)
	assert.Equal(t, 127.1, location.Lon)
}

func TestLocateSlots_IsolatedSlotFailure(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	timeline := []domain.TimelinePoint{
		sample(0, 1, 1),
		sample(3600, 2, 2),
	}

	slots := []domain.MealSlot{
		{ID: "slot-1", ScheduledTime: "오후 12:00"},
		{ID: "slot-2", ScheduledTime: "not-a-time"},
		{ID: "slot-3", ScheduledTime: "10:30"},
	}

	results := LocateSlots(timeline, slots, departure, zap.NewNop())
	require.Len(t, results, 3)

	assert.NotNil(t, results[0].Location)
	assert.NoError(t, results[0].Err)

	assert.Nil(t, results[1].Location)
	require.Error(t, results[1].Err)
	var tfe *timeutil.TimeFormatError
	assert.ErrorAs(t, results[1].Err, &tfe)

	assert.NotNil(t, results[2].Location)
	assert.NoError(t, results[2].Err)
}

func TestLocateSlots_AtDeparture(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	timeline := []domain.TimelinePoint{
		sample(0, 37.5, 127.1),
		sample(1800, 37.6, 127.2),
	}

	results := LocateSlots(timeline, []domain.MealSlot{
		{ID: "slot-1", ScheduledTime: "오전 09:00"},
	}, departure, zap.NewNop())

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Location)
	assert.Equal(t, 37.5, results[0].Location.Lat)
}
