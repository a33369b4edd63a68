package repository

import (
	"context"
	"time"

	"github.com/schedule-microservice/internal/domain"
)

// CacheRepository is a byte-oriented cache with TTL.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetSchedule(ctx context.Context, scheduleID string) (*domain.Schedule, error)
	SetSchedule(ctx context.Context, schedule *domain.Schedule, ttl time.Duration) error
	DeleteSchedule(ctx context.Context, scheduleID string) error
}
