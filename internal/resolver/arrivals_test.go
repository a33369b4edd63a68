package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/domain"
)

func taggedPath(travelSeconds *int64, tag string) domain.Feature {
	return domain.Feature{
		Kind:          domain.FeaturePath,
		Coordinates:   []domain.Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}},
		TravelSeconds: travelSeconds,
		WaypointTag:   tag,
	}
}

func taggedPoint(tag string) domain.Feature {
	f := pointFeature(1, 1)
	f.WaypointTag = tag
	return f
}

func TestAnnotateArrivals_OrdinalMapping(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	features := []domain.Feature{
		pointFeature(1, 1),
		taggedPath(seconds(400), ""),
		taggedPoint("B2"), // reached at 400s -> 09:06:40
		taggedPath(seconds(200), ""),
		taggedPoint("B1"), // reached at 600s -> 09:10:00
	}

	arrivals := AnnotateArrivals(features, departure, zap.NewNop())

	require.Len(t, arrivals, 2)
	assert.Equal(t, "오전 09:06", arrivals[1]) // "B2" -> ordinal 1
	assert.Equal(t, "오전 09:10", arrivals[0]) // "B1" -> ordinal 0
}

func TestAnnotateArrivals_FirstOccurrenceWins(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	features := []domain.Feature{
		taggedPoint("B1"),
		taggedPath(seconds(3600), ""),
		taggedPoint("B1"), // revisit: ignored
	}

	arrivals := AnnotateArrivals(features, departure, zap.NewNop())

	require.Len(t, arrivals, 1)
	assert.Equal(t, "오전 09:00", arrivals[0])
}

func TestAnnotateArrivals_MalformedAndForeignTags(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	features := []domain.Feature{
		taggedPoint("S"),    // start marker: different class, ignored
		taggedPoint("E"),    // end marker: ignored
		taggedPoint("Bx"),   // malformed suffix: logged, skipped
		taggedPoint("B"),    // missing suffix: logged, skipped
		taggedPoint("B0"),   // ordinals are 1-based: skipped
		taggedPath(seconds(100), ""),
		taggedPoint("B1"),
	}

	// Malformed tags never abort the computation.
	arrivals := AnnotateArrivals(features, departure, zap.NewNop())

	require.Len(t, arrivals, 1)
	assert.Equal(t, "오전 09:01", arrivals[0])
}

func TestAnnotateArrivals_TagOnPathRecordedBeforeItsLeg(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	features := []domain.Feature{
		taggedPath(seconds(600), ""),
		taggedPath(seconds(600), "B1"), // arrival at 600s, before this leg
	}

	arrivals := AnnotateArrivals(features, departure, zap.NewNop())

	require.Len(t, arrivals, 1)
	assert.Equal(t, "오전 09:10", arrivals[0])
}

func TestAnnotateArrivals_NoTags(t *testing.T) {
	departure := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	arrivals := AnnotateArrivals([]domain.Feature{
		pointFeature(1, 1),
		taggedPath(seconds(100), ""),
	}, departure, zap.NewNop())

	assert.Empty(t, arrivals)
}
