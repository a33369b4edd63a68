package domain

import "time"

// MealType mirrors the API enum for slot kinds.
type MealType int

const (
	MealTypeUnspecified MealType = iota
	MealTypeBreakfast
	MealTypeLunch
	MealTypeDinner
	MealTypeSnack
)

// DefaultSlotRadius is the restaurant search radius (meters) applied when a
// slot does not specify one.
const DefaultSlotRadius = 1000

// Schedule is a user's planned trip: departure, destination, optional
// waypoints, and the meal/snack slots to resolve along the route.
type Schedule struct {
	ID                    string
	UserID                string
	Title                 string
	Purpose               string
	DepartureTime         string // wall-clock string as supplied by the user
	Departure             Location
	Destination           Location
	Waypoints             []NamedWaypoint
	Companions            []string
	MealSlots             []MealSlot
	CalculatedArrivalTime string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Location is a named coordinate (departure/destination).
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// NamedWaypoint is a caller-supplied stop. OrdinalIndex is its position in
// the original waypoint list; the route provider echoes it back as a 1-based
// tag ("B1" = index 0), and ArrivalTime is filled once resolved.
type NamedWaypoint struct {
	OrdinalIndex int     `json:"ordinal_index"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ArrivalTime  string  `json:"arrival_time,omitempty"`
}

// MealSlot is one meal/snack event to locate along the route.
type MealSlot struct {
	ID                 string
	MealType           MealType
	ScheduledTime      string // wall-clock string
	Radius             int    // restaurant search radius in meters
	CalculatedLocation *SlotLocation
	SelectedRestaurant *Restaurant
}

// SlotLocation is the resolved geographic position for a slot.
type SlotLocation struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	ScheduledTime string  `json:"scheduled_time"`
}

// CalculatedLocation is the resolver output for one slot.
type CalculatedLocation struct {
	SlotID string  `json:"slot_id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Restaurant is a place attached to a meal slot, either from the nearby
// search or the user's explicit pick.
type Restaurant struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Address      string  `json:"address,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	DetailURL    string  `json:"detail_url,omitempty"`
	Lat          float64 `json:"lat,omitempty"`
	Lon          float64 `json:"lon,omitempty"`
	Distance     int     `json:"distance,omitempty"`
}
