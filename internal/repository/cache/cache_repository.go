package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func scheduleKey(scheduleID string) string {
	return "schedule:detail:" + scheduleID
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func (r *cacheRepository) GetSchedule(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	data, err := r.Get(ctx, scheduleKey(scheduleID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var schedule domain.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		r.logger.Error("Failed to unmarshal schedule from cache",
			zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}

	return &schedule, nil
}

func (r *cacheRepository) SetSchedule(ctx context.Context, schedule *domain.Schedule, ttl time.Duration) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		r.logger.Error("Failed to marshal schedule", zap.Error(err))
		return fmt.Errorf("marshal schedule: %w", err)
	}

	return r.Set(ctx, scheduleKey(schedule.ID), data, ttl)
}

func (r *cacheRepository) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return r.Delete(ctx, scheduleKey(scheduleID))
}
