package errors

import "net/http"

var (
	ErrScheduleNotFound = New(
		"SCHEDULE_NOT_FOUND",
		"Schedule not found",
		http.StatusNotFound,
	)

	ErrSlotNotFound = New(
		"SLOT_NOT_FOUND",
		"Meal time slot not found",
		http.StatusNotFound,
	)

	ErrPermissionDenied = New(
		"PERMISSION_DENIED",
		"No permission to access this schedule",
		http.StatusForbidden,
	)

	ErrInvalidDepartureTime = New(
		"INVALID_DEPARTURE_TIME",
		"Departure time could not be parsed",
		http.StatusBadRequest,
	)

	ErrInvalidRouteGeometry = New(
		"INVALID_ROUTE_GEOMETRY",
		"Route provider returned malformed geometry",
		http.StatusBadGateway,
	)

	ErrEmptyRoute = New(
		"EMPTY_ROUTE",
		"Route provider returned a route without usable points",
		http.StatusBadGateway,
	)

	ErrRouteProviderError = New(
		"ROUTE_PROVIDER_ERROR",
		"Route prediction request failed",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
