package schedule_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/domain"
	workerschedule "github.com/schedule-microservice/internal/worker/schedule"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockCalculator is a mock of the schedule calculation use case
type MockCalculator struct {
	mock.Mock
}

func (m *MockCalculator) CalculateFromEvent(ctx context.Context, event *domain.ScheduleCalculateEvent) (*domain.ScheduleCalculatedEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleCalculatedEvent), args.Error(1)
}

func newWorker(stream *MockStreamRepository, calc *MockCalculator) *workerschedule.CalculationWorker {
	return workerschedule.NewCalculationWorker(stream, calc, "test-group", 1, zap.NewNop())
}

func TestCalculationWorker_Name(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockCalculator{})
	assert.Equal(t, "schedule-calculation", w.Name())
}

func TestCalculationWorker_Stop(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockCalculator{})

	// Stop should not error even if not started
	err := w.Stop()
	assert.NoError(t, err)

	// Calling stop multiple times should be safe
	err = w.Stop()
	assert.NoError(t, err)
	assert.True(t, w.IsStopped())
}

func TestCalculationWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamScheduleCalculate, "test-group").
		Return(nil)

	w := newWorker(mockStream, &MockCalculator{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationWorker_ProcessesJob(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockCalc := &MockCalculator{}

	event := domain.ScheduleCalculateEvent{
		ScheduleID: "sched-1",
		Type:       domain.CalculationSelect,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamScheduleCalculate, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamScheduleCalculate, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: string(payload)}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamScheduleCalculate, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	result := &domain.ScheduleCalculatedEvent{
		ScheduleID:  "sched-1",
		ArrivalTime: "오전 11:00",
	}
	mockCalc.On("CalculateFromEvent", mock.Anything, mock.MatchedBy(func(e *domain.ScheduleCalculateEvent) bool {
		return e.ScheduleID == "sched-1" && e.Type == domain.CalculationSelect
	})).Return(result, nil)

	mockStream.On("AckMessages", mock.Anything, domain.StreamScheduleCalculate, "test-group", []string{"1-0"}).
		Return(nil)
	mockStream.On("PublishToStream", mock.Anything, domain.StreamScheduleCalculated, result).
		Return(nil)

	w := newWorker(mockStream, mockCalc)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	// Give the loop a moment to drain the batch
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	mockCalc.AssertExpectations(t)
	mockStream.AssertExpectations(t)
}

func TestCalculationWorker_AcksMalformedMessage(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockCalc := &MockCalculator{}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamScheduleCalculate, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamScheduleCalculate, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "2-0", Data: "not json"}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamScheduleCalculate, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessages", mock.Anything, domain.StreamScheduleCalculate, "test-group", []string{"2-0"}).
		Return(nil)

	w := newWorker(mockStream, mockCalc)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	mockCalc.AssertNotCalled(t, "CalculateFromEvent", mock.Anything, mock.Anything)
	mockStream.AssertExpectations(t)
}
