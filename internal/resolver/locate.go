package resolver

import (
	"time"

	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/pkg/timeutil"
	"go.uber.org/zap"
)

// SlotResult is the per-slot outcome: either a calculated location or the
// error that prevented one. A failed slot never aborts the batch.
type SlotResult struct {
	SlotID   string
	Location *domain.CalculatedLocation
	Err      error
}

// LocateSlots resolves each slot's wall-clock time to a route coordinate.
// Slots are independent; a time-parse failure is recorded on its SlotResult
// and processing continues.
func LocateSlots(
	timeline []domain.TimelinePoint,
	slots []domain.MealSlot,
	departure time.Time,
	logger *zap.Logger,
) []SlotResult {
	results := make([]SlotResult, 0, len(slots))

	for _, slot := range slots {
		location, err := locateSlot(timeline, slot, departure)
		if err != nil {
			logger.Warn("Failed to locate meal slot",
				zap.String("slot_id", slot.ID),
				zap.String("scheduled_time", slot.ScheduledTime),
				zap.Error(err))
			results = append(results, SlotResult{SlotID: slot.ID, Err: err})
			continue
		}

		logger.Debug("Located meal slot",
			zap.String("slot_id", slot.ID),
			zap.Float64("lat", location.Lat),
			zap.Float64("lon", location.Lon))
		results = append(results, SlotResult{SlotID: slot.ID, Location: location})
	}

	return results
}

func locateSlot(
	timeline []domain.TimelinePoint,
	slot domain.MealSlot,
	departure time.Time,
) (*domain.CalculatedLocation, error) {
	slotTime, err := timeutil.ParseClock(slot.ScheduledTime, departure)
	if err != nil {
		return nil, err
	}

	// A slot clock earlier than departure means the event happens on the
	// next calendar day.
	if slotTime.Before(departure) {
		slotTime = slotTime.AddDate(0, 0, 1)
	}

	targetOffset := int64(slotTime.Sub(departure) / time.Second)
	return locationForOffset(timeline, slot.ID, targetOffset), nil
}

// locationForOffset maps a seconds-from-departure offset to a coordinate. A
// negative offset (slot predating travel even after rollover) falls back to
// the route origin rather than failing.
func locationForOffset(timeline []domain.TimelinePoint, slotID string, targetOffset int64) *domain.CalculatedLocation {
	point := timeline[0]
	if targetOffset >= 0 {
		point = nearestSample(timeline, targetOffset)
	}
	return &domain.CalculatedLocation{
		SlotID: slotID,
		Lat:    point.Coordinate.Lat,
		Lon:    point.Coordinate.Lon,
	}
}

// nearestSample scans the timeline once and returns the sample with minimum
// absolute time difference. Ties go to the earliest sample in the route.
func nearestSample(timeline []domain.TimelinePoint, targetOffset int64) domain.TimelinePoint {
	best := timeline[0]
	bestDiff := absDiff(best.ElapsedSeconds, targetOffset)

	for _, point := range timeline[1:] {
		if diff := absDiff(point.ElapsedSeconds, targetOffset); diff < bestDiff {
			best = point
			bestDiff = diff
		}
	}

	return best
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
