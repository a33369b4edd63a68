package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedule-microservice/internal/domain"
)

func rawPoint(lon, lat float64) domain.RawFeature {
	return domain.RawFeature{
		Geometry: domain.RawGeometry{
			Type:        "Point",
			Coordinates: []interface{}{lon, lat},
		},
	}
}

func rawPath(pairs [][2]float64, travelSeconds *int64, tag string) domain.RawFeature {
	coords := make([]interface{}, len(pairs))
	for i, p := range pairs {
		coords[i] = []interface{}{p[0], p[1]}
	}
	return domain.RawFeature{
		Geometry: domain.RawGeometry{
			Type:        "LineString",
			Coordinates: coords,
		},
		Properties: domain.RouteProperties{
			Time:      travelSeconds,
			PointType: tag,
		},
	}
}

func seconds(v int64) *int64 { return &v }

func TestParseFeatures_FlatPairIsPoint(t *testing.T) {
	features, err := ParseFeatures([]domain.RawFeature{rawPoint(127.1, 37.5)})
	require.NoError(t, err)
	require.Len(t, features, 1)

	assert.Equal(t, domain.FeaturePoint, features[0].Kind)
	assert.Equal(t, domain.Coordinate{Lat: 37.5, Lon: 127.1}, features[0].Coordinate)
}

func TestParseFeatures_NestedPairsArePath(t *testing.T) {
	features, err := ParseFeatures([]domain.RawFeature{
		rawPath([][2]float64{{127.1, 37.5}, {127.2, 37.6}}, seconds(120), "B1"),
	})
	require.NoError(t, err)
	require.Len(t, features, 1)

	f := features[0]
	assert.Equal(t, domain.FeaturePath, f.Kind)
	require.Len(t, f.Coordinates, 2)
	assert.Equal(t, domain.Coordinate{Lat: 37.5, Lon: 127.1}, f.Coordinates[0])
	assert.Equal(t, domain.Coordinate{Lat: 37.6, Lon: 127.2}, f.Coordinates[1])
	require.NotNil(t, f.TravelSeconds)
	assert.Equal(t, int64(120), *f.TravelSeconds)
	assert.Equal(t, "B1", f.WaypointTag)
}

func TestParseFeatures_MalformedShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
	}{
		{"empty list", []interface{}{}},
		{"flat triple", []interface{}{127.1, 37.5, 12.0}},
		{"flat single", []interface{}{127.1}},
		{"mixed depth", []interface{}{[]interface{}{127.1, 37.5}, 37.6}},
		{"nested triple", []interface{}{[]interface{}{127.1, 37.5, 1.0}}},
		{"non-numeric", []interface{}{"127.1", "37.5"}},
		{"not a list", "127.1,37.5"},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := ParseFeatures([]domain.RawFeature{
				rawPoint(127.0, 37.0),
				{Geometry: domain.RawGeometry{Coordinates: tt.raw}},
			})

			// One malformed feature invalidates the whole parse.
			require.Error(t, err)
			assert.Nil(t, features)

			var gfe *GeometryFormatError
			require.ErrorAs(t, err, &gfe)
			assert.Equal(t, tt.raw, gfe.Raw)
		})
	}
}

func TestParseFeatures_Empty(t *testing.T) {
	features, err := ParseFeatures(nil)
	require.NoError(t, err)
	assert.Empty(t, features)
}
