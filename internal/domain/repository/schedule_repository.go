package repository

import (
	"context"

	"github.com/schedule-microservice/internal/domain"
)

// ScheduleRepository persists schedules with their slots and restaurant picks.
type ScheduleRepository interface {
	Save(ctx context.Context, schedule *domain.Schedule) error
	Update(ctx context.Context, schedule *domain.Schedule) error
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Schedule, error)
	SaveSelectedRestaurant(ctx context.Context, scheduleID, slotID string, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id string) error
}
