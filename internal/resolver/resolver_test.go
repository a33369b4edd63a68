package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/domain"
)

func testRoute() *domain.RouteResponse {
	totalTime := int64(7200)

	point := func(lon, lat float64, tag string) domain.RawFeature {
		f := rawPoint(lon, lat)
		f.Properties.PointType = tag
		return f
	}

	route := &domain.RouteResponse{
		Features: []domain.RawFeature{
			point(127.0, 37.5, "S"),
			rawPath([][2]float64{{127.0, 37.5}, {127.2, 37.6}}, seconds(3600), ""),
			point(127.2, 37.6, "B1"),
			rawPath([][2]float64{{127.2, 37.6}, {127.4, 37.7}}, seconds(3600), ""),
			point(127.4, 37.7, "E"),
		},
	}
	route.Features[0].Properties.TotalTime = &totalTime
	return route
}

func TestResolver_Resolve(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	result, err := New(zap.NewNop()).Resolve(Input{
		Route: testRoute(),
		Slots: []domain.MealSlot{
			{ID: "lunch", ScheduledTime: "오전 10:00"},  // 3600s -> midpoint
			{ID: "dinner", ScheduledTime: "오전 11:00"}, // 7200s -> destination
			{ID: "broken", ScheduledTime: "soon"},
		},
		Waypoints: []domain.NamedWaypoint{
			{OrdinalIndex: 0, Name: "rest stop", Lat: 37.6, Lng: 127.2},
		},
		Departure: departure,
	})
	require.NoError(t, err)

	// Two of three slots resolve; the broken one is isolated.
	require.Len(t, result.Locations, 2)
	byID := make(map[string]domain.CalculatedLocation)
	for _, loc := range result.Locations {
		byID[loc.SlotID] = loc
	}
	assert.Equal(t, 37.6, byID["lunch"].Lat)
	assert.Equal(t, 127.2, byID["lunch"].Lon)
	assert.Equal(t, 37.7, byID["dinner"].Lat)

	require.Len(t, result.Slots, 3)
	assert.Error(t, result.Slots[2].Err)

	// Waypoint "B1" reached one hour in.
	require.Len(t, result.WaypointArrivals, 1)
	assert.Equal(t, "오전 10:00", result.WaypointArrivals[0])

	// Whole-route arrival from the provider's totalTime.
	assert.Equal(t, "오전 11:00", result.RouteArrival)
}

func TestResolver_Resolve_MalformedGeometryIsFatal(t *testing.T) {
	route := testRoute()
	route.Features[1].Geometry.Coordinates = []interface{}{127.0, 37.5, 1.0}

	result, err := New(zap.NewNop()).Resolve(Input{
		Route:     route,
		Slots:     []domain.MealSlot{{ID: "lunch", ScheduledTime: "오전 10:00"}},
		Departure: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var gfe *GeometryFormatError
	assert.ErrorAs(t, err, &gfe)
}

func TestResolver_Resolve_EmptyRouteIsFatal(t *testing.T) {
	result, err := New(zap.NewNop()).Resolve(Input{
		Route:     &domain.RouteResponse{},
		Slots:     []domain.MealSlot{{ID: "lunch", ScheduledTime: "오전 10:00"}},
		Departure: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	})

	require.ErrorIs(t, err, ErrEmptyTimeline)
	assert.Nil(t, result)
}

func TestResolver_Resolve_DropsUnmatchedWaypointTags(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	route := testRoute()
	// Provider echoes a second waypoint the caller never supplied.
	route.Features[4].Properties.PointType = "B2"

	result, err := New(zap.NewNop()).Resolve(Input{
		Route: route,
		Waypoints: []domain.NamedWaypoint{
			{OrdinalIndex: 0, Name: "rest stop"},
		},
		Departure: departure,
	})
	require.NoError(t, err)

	require.Len(t, result.WaypointArrivals, 1)
	_, hasFirst := result.WaypointArrivals[0]
	assert.True(t, hasFirst)
}

func TestResolver_Resolve_ArrivalFallsBackToTimeline(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	route := testRoute()
	route.Features[0].Properties.TotalTime = nil

	result, err := New(zap.NewNop()).Resolve(Input{
		Route:     route,
		Departure: departure,
	})
	require.NoError(t, err)

	// Accumulated path time is also 7200s here.
	assert.Equal(t, "오전 11:00", result.RouteArrival)
}
