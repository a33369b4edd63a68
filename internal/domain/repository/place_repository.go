package repository

import (
	"context"

	"github.com/schedule-microservice/internal/domain"
)

// PlaceProvider searches restaurants around a coordinate.
type PlaceProvider interface {
	SearchRestaurants(ctx context.Context, lat, lon float64, radius int) ([]domain.Restaurant, error)
}
