package resolver

import (
	"github.com/schedule-microservice/internal/domain"
)

// BuildTimeline folds an ordered feature list into elapsed-time samples.
// Path features advance the accumulated travel time; Point features emit a
// sample at the current accumulated value, so the sequence is non-decreasing
// by construction. A synthetic terminal sample guarantees the route's
// destination is reachable even when the provider omits a final Point.
func BuildTimeline(features []domain.Feature) ([]domain.TimelinePoint, error) {
	var (
		timeline       []domain.TimelinePoint
		accumulated    int64
		lastCoordinate *domain.Coordinate
	)

	for _, f := range features {
		switch f.Kind {
		case domain.FeaturePath:
			if f.TravelSeconds != nil {
				accumulated += *f.TravelSeconds
			}
			if len(f.Coordinates) > 0 {
				terminal := f.Coordinates[len(f.Coordinates)-1]
				lastCoordinate = &terminal
			}

		case domain.FeaturePoint:
			timeline = append(timeline, domain.TimelinePoint{
				ElapsedSeconds: accumulated,
				Coordinate:     f.Coordinate,
			})
			coord := f.Coordinate
			lastCoordinate = &coord
		}
	}

	if lastCoordinate != nil {
		if len(timeline) == 0 || timeline[len(timeline)-1].ElapsedSeconds < accumulated {
			timeline = append(timeline, domain.TimelinePoint{
				ElapsedSeconds: accumulated,
				Coordinate:     *lastCoordinate,
			})
		}
	}

	if len(timeline) == 0 {
		return nil, ErrEmptyTimeline
	}

	return timeline, nil
}
