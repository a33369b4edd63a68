package repository

import (
	"context"

	"github.com/schedule-microservice/internal/domain"
)

// StreamRepository is the Redis Streams transport for calculation jobs.
type StreamRepository interface {
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error)
	AckMessage(ctx context.Context, stream, group, messageID string) error
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
