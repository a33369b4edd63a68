package dto

import "github.com/schedule-microservice/internal/domain"

// ScheduleResponse is the full schedule detail.
type ScheduleResponse struct {
	ID                    string             `json:"id"`
	UserID                string             `json:"user_id"`
	Title                 string             `json:"title"`
	Purpose               string             `json:"purpose,omitempty"`
	DepartureTime         string             `json:"departure_time"`
	Departure             domain.Location    `json:"departure"`
	Destination           domain.Location    `json:"destination"`
	Waypoints             []WaypointResponse `json:"waypoints,omitempty"`
	Companions            []string           `json:"companions,omitempty"`
	MealSlots             []MealSlotResponse `json:"meal_slots,omitempty"`
	CalculatedArrivalTime string             `json:"calculated_arrival_time,omitempty"`
	CreatedAt             string             `json:"created_at"`
	UpdatedAt             string             `json:"updated_at"`
}

// ScheduleListResponse lists a user's schedules.
type ScheduleListResponse struct {
	Schedules []ScheduleSummary `json:"schedules"`
	Total     int               `json:"total"`
}

// ScheduleSummary is a list-view projection of a schedule.
type ScheduleSummary struct {
	ID                    string `json:"id"`
	Title                 string `json:"title"`
	DepartureTime         string `json:"departure_time"`
	DepartureName         string `json:"departure_name,omitempty"`
	DestinationName       string `json:"destination_name,omitempty"`
	CalculatedArrivalTime string `json:"calculated_arrival_time,omitempty"`
	CreatedAt             string `json:"created_at"`
}

// WaypointResponse is a waypoint with its resolved arrival time.
type WaypointResponse struct {
	Name        string  `json:"name,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	ArrivalTime string  `json:"arrival_time,omitempty"`
}

// MealSlotResponse is one slot with its resolved location, nearby
// restaurant candidates, and the user's pick if any.
type MealSlotResponse struct {
	ID                 string               `json:"id"`
	MealType           int                  `json:"meal_type"`
	ScheduledTime      string               `json:"scheduled_time"`
	Radius             int                  `json:"radius"`
	CalculatedLocation *domain.SlotLocation `json:"calculated_location,omitempty"`
	Restaurants        []domain.Restaurant  `json:"restaurants,omitempty"`
	SelectedRestaurant *domain.Restaurant   `json:"selected_restaurant,omitempty"`
}

// RecalculateResponse acknowledges an enqueued recalculation.
type RecalculateResponse struct {
	ScheduleID string `json:"schedule_id"`
	Status     string `json:"status"`
}
