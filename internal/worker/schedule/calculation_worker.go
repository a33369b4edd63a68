package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/domain/repository"
	"github.com/schedule-microservice/internal/worker"
)

// Calculator is the slice of the schedule use case the worker needs.
type Calculator interface {
	CalculateFromEvent(ctx context.Context, event *domain.ScheduleCalculateEvent) (*domain.ScheduleCalculatedEvent, error)
}

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
)

// CalculationWorker consumes schedule calculation jobs from the Redis
// Stream, resolves them through the schedule use case and publishes the
// results to the calculated stream.
type CalculationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	scheduleUC   Calculator
	consumerName string
	maxRetries   int
}

func NewCalculationWorker(
	streamRepo repository.StreamRepository,
	scheduleUC Calculator,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *CalculationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &CalculationWorker{
		BaseWorker:   worker.NewBaseWorker("schedule-calculation", consumerGroup, logger),
		streamRepo:   streamRepo,
		scheduleUC:   scheduleUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start runs the consume loop until stopped.
func (w *CalculationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CalculationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamScheduleCalculate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads and handles up to maxBatchSize jobs. Returns how many
// messages were consumed (including malformed ones that got acked away).
func (w *CalculationWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamScheduleCalculate,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// Ack the broken message so it does not stay pending forever
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		w.handleEvent(ctx, event)
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamScheduleCalculate, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to acknowledge batch", zap.Error(err))
	}

	return len(messages), nil
}

func (w *CalculationWorker) parseMessage(msg domain.StreamMessage) (*domain.ScheduleCalculateEvent, error) {
	var event domain.ScheduleCalculateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.ScheduleID == "" {
		return nil, fmt.Errorf("event has no schedule_id")
	}
	return &event, nil
}

// handleEvent runs one calculation with retries and publishes the outcome.
// A job that keeps failing is reported on the calculated stream with an
// error field instead of being redelivered.
func (w *CalculationWorker) handleEvent(ctx context.Context, event *domain.ScheduleCalculateEvent) {
	logger := w.Logger()

	var result *domain.ScheduleCalculatedEvent
	var err error

	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		result, err = w.scheduleUC.CalculateFromEvent(ctx, event)
		if err == nil {
			break
		}

		logger.Warn("Calculation attempt failed",
			zap.String("schedule_id", event.ScheduleID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	if err != nil {
		logger.Error("Calculation failed permanently",
			zap.String("schedule_id", event.ScheduleID),
			zap.Error(err))
		result = &domain.ScheduleCalculatedEvent{
			ScheduleID: event.ScheduleID,
			Error:      err.Error(),
		}
	} else {
		logger.Info("Calculation finished",
			zap.String("schedule_id", event.ScheduleID),
			zap.String("arrival_time", result.ArrivalTime),
			zap.Int("locations", len(result.Locations)))
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamScheduleCalculated, result); err != nil {
		logger.Error("Failed to publish calculation result",
			zap.String("schedule_id", event.ScheduleID),
			zap.Error(err))
	}
}
