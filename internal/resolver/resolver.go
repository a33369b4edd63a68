// Package resolver implements the route-based temporal location resolver:
// given a predicted route and a set of wall-clock events, it computes where
// the traveler will be at each event time and when each named waypoint is
// reached. It is pure computation: no I/O, no shared state, safe to call
// concurrently for independent requests.
package resolver

import (
	"time"

	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/pkg/timeutil"
	"go.uber.org/zap"
)

// Input is everything one resolution pass consumes.
type Input struct {
	Route     *domain.RouteResponse
	Slots     []domain.MealSlot
	Waypoints []domain.NamedWaypoint
	Departure time.Time
}

// Result is the resolver output. Locations holds one entry per successfully
// resolved slot (callers key by slot ID, ordering is not guaranteed); Slots
// additionally carries the per-slot errors for failed ones.
type Result struct {
	Locations        []domain.CalculatedLocation
	Slots            []SlotResult
	WaypointArrivals map[int]string
	RouteArrival     string
}

// Resolver ties the pipeline stages together.
type Resolver struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve runs the full pipeline: parse geometry, build the timeline, locate
// every slot, annotate waypoint arrivals, and estimate the whole-route
// arrival. Geometry and timeline errors are fatal for the request; per-slot
// failures are isolated into Result.Slots.
func (r *Resolver) Resolve(in Input) (*Result, error) {
	features, err := ParseFeatures(in.Route.Features)
	if err != nil {
		return nil, err
	}

	timeline, err := BuildTimeline(features)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Timeline built",
		zap.Int("features", len(features)),
		zap.Int("samples", len(timeline)),
		zap.Int("slots", len(in.Slots)))

	slots := LocateSlots(timeline, in.Slots, in.Departure, r.logger)

	locations := make([]domain.CalculatedLocation, 0, len(slots))
	for _, sr := range slots {
		if sr.Location != nil {
			locations = append(locations, *sr.Location)
		}
	}

	arrivals := AnnotateArrivals(features, in.Departure, r.logger)

	// Drop tags with no matching caller waypoint; the provider numbering
	// is authoritative only within the supplied list.
	if in.Waypoints != nil {
		for ordinal := range arrivals {
			if ordinal >= len(in.Waypoints) {
				r.logger.Warn("Waypoint tag without matching waypoint",
					zap.Int("ordinal_index", ordinal))
				delete(arrivals, ordinal)
			}
		}
	}

	return &Result{
		Locations:        locations,
		Slots:            slots,
		WaypointArrivals: arrivals,
		RouteArrival:     r.routeArrival(in, timeline),
	}, nil
}

// routeArrival estimates the whole-route arrival clock: the provider's
// reported total time when present, otherwise the last timeline sample.
func (r *Resolver) routeArrival(in Input, timeline []domain.TimelinePoint) string {
	total, ok := in.Route.TotalRouteSeconds()
	if !ok {
		total = timeline[len(timeline)-1].ElapsedSeconds
	}
	return timeutil.FormatClock(in.Departure.Add(time.Duration(total) * time.Second))
}
