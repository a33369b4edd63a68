package repository

import (
	"context"

	"github.com/schedule-microservice/internal/domain"
)

// RouteProvider fetches a predicted route for a departure/destination pair.
type RouteProvider interface {
	GetRoutePrediction(ctx context.Context, req domain.RouteRequest) (*domain.RouteResponse, error)
}
