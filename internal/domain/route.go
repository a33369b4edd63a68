package domain

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteResponse is the decoded route provider payload: an ordered list of
// geometry features describing the predicted drive.
type RouteResponse struct {
	Features []RawFeature `json:"features"`
}

// RawFeature is one undecoded geometry record. Coordinates stays untyped
// because the provider encodes points as a flat [lon, lat] pair and legs as a
// nested list of pairs; shape dispatch happens in the resolver.
type RawFeature struct {
	Type       string          `json:"type"`
	Geometry   RawGeometry     `json:"geometry"`
	Properties RouteProperties `json:"properties"`
}

type RawGeometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// RouteProperties carries the per-feature metadata the provider attaches
// next to the geometry.
type RouteProperties struct {
	TotalDistance *int64 `json:"totalDistance,omitempty"`
	TotalTime     *int64 `json:"totalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	PointType     string `json:"pointType,omitempty"`
	Time          *int64 `json:"time,omitempty"`
}

// TotalRouteSeconds returns the whole-route traversal time the provider
// reports on its first feature, or false when absent.
func (r *RouteResponse) TotalRouteSeconds() (int64, bool) {
	if len(r.Features) == 0 || r.Features[0].Properties.TotalTime == nil {
		return 0, false
	}
	return *r.Features[0].Properties.TotalTime, true
}

// FeatureKind discriminates the parsed feature union.
type FeatureKind int

const (
	// FeaturePoint is a single location along the route.
	FeaturePoint FeatureKind = iota
	// FeaturePath is one leg between two locations, optionally annotated
	// with a traversal duration and a provider waypoint tag.
	FeaturePath
)

// Feature is a normalized geometry record. Exactly one of Coordinate (Point)
// or Coordinates (Path) is meaningful depending on Kind.
type Feature struct {
	Kind        FeatureKind
	Coordinate  Coordinate
	Coordinates []Coordinate

	// TravelSeconds is the leg traversal duration, when the provider
	// reported one.
	TravelSeconds *int64

	// WaypointTag is the provider-internal ordinal code ("B1", "B2", ...)
	// linking a feature back to a caller-supplied waypoint.
	WaypointTag string
}

// TimelinePoint is one sample of "where the traveler is at elapsed time T".
type TimelinePoint struct {
	ElapsedSeconds int64
	Coordinate     Coordinate
}

// RouteRequest describes a route prediction call to the provider.
type RouteRequest struct {
	Departure     RouteEndpoint
	Destination   RouteEndpoint
	Waypoints     []RouteEndpoint
	DepartureTime string // provider API format, see timeutil.FormatTmapAPI
}

// RouteEndpoint is a named coordinate in a route request.
type RouteEndpoint struct {
	Name string
	Lat  float64
	Lon  float64
}
