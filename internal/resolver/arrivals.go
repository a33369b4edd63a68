package resolver

import (
	"strconv"
	"strings"
	"time"

	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/pkg/timeutil"
	"go.uber.org/zap"
)

// waypointTagMarker prefixes the provider's ordinal waypoint tags ("B1",
// "B2", ...). Other tag classes the provider emits are ignored.
const waypointTagMarker = 'B'

// AnnotateArrivals walks the feature list accumulating travel time and
// records the wall-clock arrival at every tagged waypoint, keyed by the
// caller's 0-based ordinal index. Only the first occurrence of an ordinal is
// kept. Malformed tags are logged and skipped: arrival annotation is
// best-effort supplementary output and must never abort the calculation.
func AnnotateArrivals(
	features []domain.Feature,
	departure time.Time,
	logger *zap.Logger,
) map[int]string {
	arrivals := make(map[int]string)
	var accumulated int64

	for _, f := range features {
		if f.WaypointTag != "" {
			// The tag marks arrival at the waypoint, before the
			// feature's own leg (if any) is traversed.
			if ordinal, ok := parseWaypointTag(f.WaypointTag, logger); ok {
				if _, seen := arrivals[ordinal]; !seen {
					arrivals[ordinal] = timeutil.FormatClock(departure.Add(time.Duration(accumulated) * time.Second))
				}
			}
		}

		if f.Kind == domain.FeaturePath && f.TravelSeconds != nil {
			accumulated += *f.TravelSeconds
		}
	}

	return arrivals
}

// parseWaypointTag maps a 1-based provider tag to a 0-based ordinal index.
func parseWaypointTag(tag string, logger *zap.Logger) (int, bool) {
	if tag[0] != waypointTagMarker {
		return 0, false
	}

	number, err := strconv.Atoi(strings.TrimSpace(tag[1:]))
	if err != nil || number < 1 {
		logger.Warn("Skipping malformed waypoint tag", zap.String("tag", tag))
		return 0, false
	}

	return number - 1, true
}
