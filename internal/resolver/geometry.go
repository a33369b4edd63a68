package resolver

import (
	"github.com/schedule-microservice/internal/domain"
)

// ParseFeatures normalizes a raw route response into typed features. A single
// malformed geometry invalidates the whole route: no partial result is
// returned.
func ParseFeatures(raw []domain.RawFeature) ([]domain.Feature, error) {
	features := make([]domain.Feature, 0, len(raw))

	for _, rf := range raw {
		feature, err := parseFeature(rf)
		if err != nil {
			return nil, err
		}
		features = append(features, feature)
	}

	return features, nil
}

func parseFeature(rf domain.RawFeature) (domain.Feature, error) {
	kind, coords, err := normalizeGeometry(rf.Geometry.Coordinates)
	if err != nil {
		return domain.Feature{}, err
	}

	feature := domain.Feature{
		Kind:          kind,
		TravelSeconds: rf.Properties.Time,
		WaypointTag:   rf.Properties.PointType,
	}

	switch kind {
	case domain.FeaturePoint:
		feature.Coordinate = coords[0]
	case domain.FeaturePath:
		feature.Coordinates = coords
	}

	return feature, nil
}

// normalizeGeometry disambiguates the two provider encodings by nesting
// depth: a flat [lon, lat] pair is a point, a list of such pairs is a path.
// Anything else (empty list, wrong pair length, mixed depth) is malformed.
func normalizeGeometry(raw interface{}) (domain.FeatureKind, []domain.Coordinate, error) {
	list, ok := raw.([]interface{})
	if !ok || len(list) == 0 {
		return 0, nil, &GeometryFormatError{Raw: raw}
	}

	switch list[0].(type) {
	case float64:
		coord, ok := asCoordinate(list)
		if !ok {
			return 0, nil, &GeometryFormatError{Raw: raw}
		}
		return domain.FeaturePoint, []domain.Coordinate{coord}, nil

	case []interface{}:
		coords := make([]domain.Coordinate, 0, len(list))
		for _, elem := range list {
			pair, ok := elem.([]interface{})
			if !ok {
				return 0, nil, &GeometryFormatError{Raw: raw}
			}
			coord, ok := asCoordinate(pair)
			if !ok {
				return 0, nil, &GeometryFormatError{Raw: raw}
			}
			coords = append(coords, coord)
		}
		return domain.FeaturePath, coords, nil

	default:
		return 0, nil, &GeometryFormatError{Raw: raw}
	}
}

// asCoordinate reads one [lon, lat] pair.
func asCoordinate(pair []interface{}) (domain.Coordinate, bool) {
	if len(pair) != 2 {
		return domain.Coordinate{}, false
	}
	lon, lonOK := pair[0].(float64)
	lat, latOK := pair[1].(float64)
	if !lonOK || !latOK {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Lat: lat, Lon: lon}, true
}
