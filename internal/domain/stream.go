package domain

// Stream names (must match the gateway side).
const (
	StreamScheduleCalculate  = "stream:schedule:calculate"
	StreamScheduleCalculated = "stream:schedule:calculated"
)

// CalculationType distinguishes recalculation triggers.
type CalculationType string

const (
	// CalculationSelect recalculates with the schedule's stored departure.
	CalculationSelect CalculationType = "SELECT"
	// CalculationUpdate recalculates from the traveler's current position.
	CalculationUpdate CalculationType = "UPDATE"
)

// ScheduleCalculateEvent asks the worker to (re)resolve a schedule's route.
type ScheduleCalculateEvent struct {
	ScheduleID string          `json:"schedule_id"`
	Type       CalculationType `json:"type"`

	// UPDATE only: the traveler's live position and clock.
	CurrentLat  *float64 `json:"current_lat,omitempty"`
	CurrentLng  *float64 `json:"current_lng,omitempty"`
	CurrentTime *string  `json:"current_time,omitempty"` // RFC 3339
}

// ScheduleCalculatedEvent reports a finished (re)calculation.
type ScheduleCalculatedEvent struct {
	ScheduleID  string               `json:"schedule_id"`
	ArrivalTime string               `json:"arrival_time,omitempty"`
	Locations   []CalculatedLocation `json:"locations,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// StreamMessage is one entry read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
