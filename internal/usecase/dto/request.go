package dto

// CreateScheduleRequest creates a schedule and triggers the first calculation.
type CreateScheduleRequest struct {
	UserID        string          `json:"user_id" validate:"required"`
	Title         string          `json:"title" validate:"required,min=1,max=200"`
	Purpose       string          `json:"purpose" validate:"omitempty,max=500"`
	DepartureTime string          `json:"departure_time" validate:"required"`
	Departure     LocationInput   `json:"departure" validate:"required"`
	Destination   LocationInput   `json:"destination" validate:"required"`
	Waypoints     []LocationInput `json:"waypoints,omitempty" validate:"omitempty,max=5,dive"`
	Companions    []string        `json:"companions,omitempty" validate:"omitempty,max=20"`
	MealSlots     []MealSlotInput `json:"meal_slots,omitempty" validate:"omitempty,max=10,dive"`
}

// UpdateScheduleRequest replaces a schedule's contents and recalculates.
type UpdateScheduleRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=200"`
	Purpose       string          `json:"purpose" validate:"omitempty,max=500"`
	DepartureTime string          `json:"departure_time" validate:"required"`
	Departure     LocationInput   `json:"departure" validate:"required"`
	Destination   LocationInput   `json:"destination" validate:"required"`
	Waypoints     []LocationInput `json:"waypoints,omitempty" validate:"omitempty,max=5,dive"`
	Companions    []string        `json:"companions,omitempty" validate:"omitempty,max=20"`
	MealSlots     []MealSlotInput `json:"meal_slots,omitempty" validate:"omitempty,max=10,dive"`
}

// LocationInput is a named coordinate in a request body.
type LocationInput struct {
	Name string  `json:"name" validate:"omitempty,max=200"`
	Lat  float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng  float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// MealSlotInput is one meal/snack event the caller wants located.
type MealSlotInput struct {
	MealType      int    `json:"meal_type" validate:"min=0,max=4"`
	ScheduledTime string `json:"scheduled_time" validate:"required"`
	Radius        int    `json:"radius" validate:"omitempty,min=100,max=5000"`
}

// SelectRestaurantRequest pins the user's restaurant pick to a slot.
type SelectRestaurantRequest struct {
	RestaurantID string  `json:"restaurant_id" validate:"required"`
	Name         string  `json:"name" validate:"required,max=200"`
	Category     string  `json:"category" validate:"omitempty,max=200"`
	Address      string  `json:"address" validate:"omitempty,max=300"`
	Phone        string  `json:"phone" validate:"omitempty,max=30"`
	DetailURL    string  `json:"detail_url" validate:"omitempty,max=500"`
	Lat          float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng          float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
}

// RecalculateRequest triggers an async recalculation for a schedule.
type RecalculateRequest struct {
	Type        string   `json:"type" validate:"required,oneof=SELECT UPDATE"`
	CurrentLat  *float64 `json:"current_lat,omitempty" validate:"omitempty,min=-90,max=90"`
	CurrentLng  *float64 `json:"current_lng,omitempty" validate:"omitempty,min=-180,max=180"`
	CurrentTime *string  `json:"current_time,omitempty"`
}
