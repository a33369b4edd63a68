package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/domain/repository"
	apperrors "github.com/schedule-microservice/internal/pkg/errors"
	"github.com/schedule-microservice/internal/pkg/timeutil"
	"github.com/schedule-microservice/internal/resolver"
	"github.com/schedule-microservice/internal/usecase/dto"
)

// ScheduleUseCase drives the schedule lifecycle: create/update with route
// calculation, detail with restaurant candidates, restaurant selection, and
// async recalculation through the job stream.
type ScheduleUseCase struct {
	scheduleRepo  repository.ScheduleRepository
	routeProvider repository.RouteProvider
	placeProvider repository.PlaceProvider
	cacheRepo     repository.CacheRepository
	streamRepo    repository.StreamRepository
	resolver      *resolver.Resolver
	logger        *zap.Logger
	cacheTTL      time.Duration
}

func NewScheduleUseCase(
	scheduleRepo repository.ScheduleRepository,
	routeProvider repository.RouteProvider,
	placeProvider repository.PlaceProvider,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	resolver *resolver.Resolver,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		scheduleRepo:  scheduleRepo,
		routeProvider: routeProvider,
		placeProvider: placeProvider,
		cacheRepo:     cacheRepo,
		streamRepo:    streamRepo,
		resolver:      resolver,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

// CreateSchedule builds the schedule, runs the route calculation, persists
// the result and returns the detail with restaurant candidates per slot.
func (uc *ScheduleUseCase) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	departure, err := uc.departureInstant(req.DepartureTime)
	if err != nil {
		return nil, apperrors.ErrInvalidDepartureTime.WithDetails(map[string]interface{}{
			"departure_time": req.DepartureTime,
		})
	}

	schedule := &domain.Schedule{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		Title:         req.Title,
		Purpose:       req.Purpose,
		DepartureTime: req.DepartureTime,
		Departure:     toLocation(req.Departure),
		Destination:   toLocation(req.Destination),
		Waypoints:     toWaypoints(req.Waypoints),
		Companions:    req.Companions,
		MealSlots:     toMealSlots(req.MealSlots),
	}

	if err := uc.calculate(ctx, schedule, schedule.Departure, departure); err != nil {
		return nil, err
	}

	if err := uc.scheduleRepo.Save(ctx, schedule); err != nil {
		uc.logger.Error("Failed to save schedule", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.String("user_id", schedule.UserID),
		zap.Int("slots", len(schedule.MealSlots)))

	restaurants := uc.searchRestaurants(ctx, schedule)
	return toScheduleResponse(schedule, restaurants), nil
}

// GetSchedule returns the schedule detail, serving from cache when possible.
// Restaurant candidates are searched per resolved slot on every detail view.
func (uc *ScheduleUseCase) GetSchedule(ctx context.Context, userID, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := uc.cacheRepo.GetSchedule(ctx, scheduleID)
	if err != nil {
		uc.logger.Warn("Failed to get schedule from cache", zap.Error(err))
	}

	if schedule == nil {
		schedule, err = uc.scheduleRepo.GetByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, apperrors.ErrScheduleNotFound) {
				return nil, apperrors.ErrScheduleNotFound
			}
			uc.logger.Error("Failed to get schedule", zap.Error(err))
			return nil, apperrors.ErrDatabaseError
		}

		if err := uc.cacheRepo.SetSchedule(ctx, schedule, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache schedule", zap.Error(err))
		}
	}

	if schedule.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	restaurants := uc.searchRestaurants(ctx, schedule)
	return toScheduleResponse(schedule, restaurants), nil
}

// ListSchedules returns list-view summaries of the user's schedules.
func (uc *ScheduleUseCase) ListSchedules(ctx context.Context, userID string) (*dto.ScheduleListResponse, error) {
	schedules, err := uc.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list schedules", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	summaries := make([]dto.ScheduleSummary, 0, len(schedules))
	for _, s := range schedules {
		summaries = append(summaries, dto.ScheduleSummary{
			ID:                    s.ID,
			Title:                 s.Title,
			DepartureTime:         s.DepartureTime,
			DepartureName:         s.Departure.Name,
			DestinationName:       s.Destination.Name,
			CalculatedArrivalTime: s.CalculatedArrivalTime,
			CreatedAt:             s.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.ScheduleListResponse{
		Schedules: summaries,
		Total:     len(summaries),
	}, nil
}

// UpdateSchedule replaces the schedule contents, recalculates the route and
// invalidates the cached detail.
func (uc *ScheduleUseCase) UpdateSchedule(ctx context.Context, userID, scheduleID string, req dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	existing, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, apperrors.ErrDatabaseError
	}
	if existing.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	departure, err := uc.departureInstant(req.DepartureTime)
	if err != nil {
		return nil, apperrors.ErrInvalidDepartureTime.WithDetails(map[string]interface{}{
			"departure_time": req.DepartureTime,
		})
	}

	schedule := &domain.Schedule{
		ID:            scheduleID,
		UserID:        userID,
		Title:         req.Title,
		Purpose:       req.Purpose,
		DepartureTime: req.DepartureTime,
		Departure:     toLocation(req.Departure),
		Destination:   toLocation(req.Destination),
		Waypoints:     toWaypoints(req.Waypoints),
		Companions:    req.Companions,
		MealSlots:     toMealSlots(req.MealSlots),
		CreatedAt:     existing.CreatedAt,
	}

	if err := uc.calculate(ctx, schedule, schedule.Departure, departure); err != nil {
		return nil, err
	}

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		uc.logger.Error("Failed to update schedule", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if err := uc.cacheRepo.DeleteSchedule(ctx, scheduleID); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.Error(err))
	}

	uc.logger.Info("Schedule updated", zap.String("schedule_id", scheduleID))

	restaurants := uc.searchRestaurants(ctx, schedule)
	return toScheduleResponse(schedule, restaurants), nil
}

// DeleteSchedule removes a schedule owned by the user.
func (uc *ScheduleUseCase) DeleteSchedule(ctx context.Context, userID, scheduleID string) error {
	existing, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			return apperrors.ErrScheduleNotFound
		}
		return apperrors.ErrDatabaseError
	}
	if existing.UserID != userID {
		return apperrors.ErrPermissionDenied
	}

	if err := uc.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			return apperrors.ErrScheduleNotFound
		}
		uc.logger.Error("Failed to delete schedule", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	if err := uc.cacheRepo.DeleteSchedule(ctx, scheduleID); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.Error(err))
	}

	uc.logger.Info("Schedule deleted", zap.String("schedule_id", scheduleID))
	return nil
}

// SelectRestaurant pins the user's restaurant pick to a slot.
func (uc *ScheduleUseCase) SelectRestaurant(ctx context.Context, userID, scheduleID, slotID string, req dto.SelectRestaurantRequest) error {
	existing, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			return apperrors.ErrScheduleNotFound
		}
		return apperrors.ErrDatabaseError
	}
	if existing.UserID != userID {
		return apperrors.ErrPermissionDenied
	}

	restaurant := &domain.Restaurant{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Category:     req.Category,
		Address:      req.Address,
		Phone:        req.Phone,
		DetailURL:    req.DetailURL,
		Lat:          req.Lat,
		Lon:          req.Lng,
	}

	if err := uc.scheduleRepo.SaveSelectedRestaurant(ctx, scheduleID, slotID, restaurant); err != nil {
		if errors.Is(err, apperrors.ErrSlotNotFound) {
			return apperrors.ErrSlotNotFound
		}
		uc.logger.Error("Failed to save selected restaurant", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	if err := uc.cacheRepo.DeleteSchedule(ctx, scheduleID); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.Error(err))
	}

	uc.logger.Info("Restaurant selected",
		zap.String("schedule_id", scheduleID),
		zap.String("slot_id", slotID),
		zap.String("restaurant_id", req.RestaurantID))
	return nil
}

// Recalculate publishes a recalculation job for the worker to pick up.
func (uc *ScheduleUseCase) Recalculate(ctx context.Context, userID, scheduleID string, req dto.RecalculateRequest) (*dto.RecalculateResponse, error) {
	existing, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, apperrors.ErrDatabaseError
	}
	if existing.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	event := &domain.ScheduleCalculateEvent{
		ScheduleID:  scheduleID,
		Type:        domain.CalculationType(req.Type),
		CurrentLat:  req.CurrentLat,
		CurrentLng:  req.CurrentLng,
		CurrentTime: req.CurrentTime,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamScheduleCalculate, event); err != nil {
		uc.logger.Error("Failed to publish calculation event", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	uc.logger.Info("Recalculation enqueued",
		zap.String("schedule_id", scheduleID),
		zap.String("type", req.Type))

	return &dto.RecalculateResponse{
		ScheduleID: scheduleID,
		Status:     "queued",
	}, nil
}

// CalculateFromEvent services one job from the calculation stream. SELECT
// recalculates from the stored departure; UPDATE reroutes from the
// traveler's reported position and clock.
func (uc *ScheduleUseCase) CalculateFromEvent(ctx context.Context, event *domain.ScheduleCalculateEvent) (*domain.ScheduleCalculatedEvent, error) {
	schedule, err := uc.scheduleRepo.GetByID(ctx, event.ScheduleID)
	if err != nil {
		return nil, err
	}

	origin := schedule.Departure
	var departure time.Time

	switch event.Type {
	case domain.CalculationUpdate:
		if event.CurrentLat == nil || event.CurrentLng == nil || event.CurrentTime == nil {
			return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"reason": "UPDATE event requires current position and time",
			})
		}
		departure, err = time.Parse(time.RFC3339, *event.CurrentTime)
		if err != nil {
			return nil, apperrors.ErrInvalidDepartureTime.WithDetails(map[string]interface{}{
				"current_time": *event.CurrentTime,
			})
		}
		origin = domain.Location{Name: "현재 위치", Lat: *event.CurrentLat, Lng: *event.CurrentLng}

	default:
		departure, err = uc.departureInstant(schedule.DepartureTime)
		if err != nil {
			return nil, apperrors.ErrInvalidDepartureTime.WithDetails(map[string]interface{}{
				"departure_time": schedule.DepartureTime,
			})
		}
	}

	if err := uc.calculate(ctx, schedule, origin, departure); err != nil {
		return nil, err
	}

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	if err := uc.cacheRepo.DeleteSchedule(ctx, schedule.ID); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.Error(err))
	}

	locations := make([]domain.CalculatedLocation, 0, len(schedule.MealSlots))
	for _, slot := range schedule.MealSlots {
		if slot.CalculatedLocation != nil {
			locations = append(locations, domain.CalculatedLocation{
				SlotID: slot.ID,
				Lat:    slot.CalculatedLocation.Lat,
				Lon:    slot.CalculatedLocation.Lon,
			})
		}
	}

	return &domain.ScheduleCalculatedEvent{
		ScheduleID:  schedule.ID,
		ArrivalTime: schedule.CalculatedArrivalTime,
		Locations:   locations,
	}, nil
}

// departureInstant resolves the departure wall-clock against the current
// time, rolling over to tomorrow when the clock has already passed today.
func (uc *ScheduleUseCase) departureInstant(clock string) (time.Time, error) {
	now := time.Now()
	departure, err := timeutil.ParseClock(clock, now)
	if err != nil {
		return time.Time{}, err
	}
	if departure.Before(now) {
		departure = departure.AddDate(0, 0, 1)
	}
	return departure, nil
}

// calculate fetches the route prediction and writes the resolver output back
// onto the schedule: slot locations, waypoint arrivals, route arrival.
func (uc *ScheduleUseCase) calculate(ctx context.Context, schedule *domain.Schedule, origin domain.Location, departure time.Time) error {
	routeReq := domain.RouteRequest{
		Departure:     domain.RouteEndpoint{Name: origin.Name, Lat: origin.Lat, Lon: origin.Lng},
		Destination:   domain.RouteEndpoint{Name: schedule.Destination.Name, Lat: schedule.Destination.Lat, Lon: schedule.Destination.Lng},
		DepartureTime: timeutil.FormatTmapAPI(departure),
	}
	for _, wp := range schedule.Waypoints {
		routeReq.Waypoints = append(routeReq.Waypoints, domain.RouteEndpoint{
			Name: wp.Name, Lat: wp.Lat, Lon: wp.Lng,
		})
	}

	route, err := uc.routeProvider.GetRoutePrediction(ctx, routeReq)
	if err != nil {
		uc.logger.Error("Route provider request failed",
			zap.String("schedule_id", schedule.ID),
			zap.Error(err))
		return apperrors.ErrRouteProviderError
	}

	result, err := uc.resolver.Resolve(resolver.Input{
		Route:     route,
		Slots:     schedule.MealSlots,
		Waypoints: schedule.Waypoints,
		Departure: departure,
	})
	if err != nil {
		return mapResolveError(err)
	}

	located := make(map[string]domain.CalculatedLocation, len(result.Locations))
	for _, loc := range result.Locations {
		located[loc.SlotID] = loc
	}
	for i := range schedule.MealSlots {
		slot := &schedule.MealSlots[i]
		if loc, ok := located[slot.ID]; ok {
			slot.CalculatedLocation = &domain.SlotLocation{
				Lat:           loc.Lat,
				Lon:           loc.Lon,
				ScheduledTime: slot.ScheduledTime,
			}
		}
	}

	for i := range schedule.Waypoints {
		if arrival, ok := result.WaypointArrivals[schedule.Waypoints[i].OrdinalIndex]; ok {
			schedule.Waypoints[i].ArrivalTime = arrival
		}
	}

	schedule.CalculatedArrivalTime = result.RouteArrival
	return nil
}

// searchRestaurants looks up nearby restaurants for every resolved slot in
// parallel. Failures degrade to an empty candidate list for that slot.
func (uc *ScheduleUseCase) searchRestaurants(ctx context.Context, schedule *domain.Schedule) map[string][]domain.Restaurant {
	results := make(map[string][]domain.Restaurant, len(schedule.MealSlots))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, slot := range schedule.MealSlots {
		if slot.CalculatedLocation == nil {
			continue
		}

		wg.Add(1)
		go func(slot domain.MealSlot) {
			defer wg.Done()

			restaurants, err := uc.placeProvider.SearchRestaurants(
				ctx,
				slot.CalculatedLocation.Lat,
				slot.CalculatedLocation.Lon,
				slot.Radius,
			)
			if err != nil {
				uc.logger.Warn("Restaurant search failed",
					zap.String("slot_id", slot.ID),
					zap.Error(err))
				return
			}

			mu.Lock()
			results[slot.ID] = restaurants
			mu.Unlock()
		}(slot)
	}

	wg.Wait()
	return results
}

func mapResolveError(err error) error {
	var geomErr *resolver.GeometryFormatError
	if errors.As(err, &geomErr) {
		return apperrors.ErrInvalidRouteGeometry
	}
	if errors.Is(err, resolver.ErrEmptyTimeline) {
		return apperrors.ErrEmptyRoute
	}
	return apperrors.ErrInternalServer
}

func toLocation(in dto.LocationInput) domain.Location {
	return domain.Location{Name: in.Name, Lat: in.Lat, Lng: in.Lng}
}

func toWaypoints(in []dto.LocationInput) []domain.NamedWaypoint {
	if len(in) == 0 {
		return nil
	}
	waypoints := make([]domain.NamedWaypoint, len(in))
	for i, wp := range in {
		waypoints[i] = domain.NamedWaypoint{
			OrdinalIndex: i,
			Name:         wp.Name,
			Lat:          wp.Lat,
			Lng:          wp.Lng,
		}
	}
	return waypoints
}

func toMealSlots(in []dto.MealSlotInput) []domain.MealSlot {
	if len(in) == 0 {
		return nil
	}
	slots := make([]domain.MealSlot, len(in))
	for i, s := range in {
		radius := s.Radius
		if radius == 0 {
			radius = domain.DefaultSlotRadius
		}
		slots[i] = domain.MealSlot{
			ID:            uuid.New().String(),
			MealType:      domain.MealType(s.MealType),
			ScheduledTime: s.ScheduledTime,
			Radius:        radius,
		}
	}
	return slots
}

func toScheduleResponse(schedule *domain.Schedule, restaurants map[string][]domain.Restaurant) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:                    schedule.ID,
		UserID:                schedule.UserID,
		Title:                 schedule.Title,
		Purpose:               schedule.Purpose,
		DepartureTime:         schedule.DepartureTime,
		Departure:             schedule.Departure,
		Destination:           schedule.Destination,
		Companions:            schedule.Companions,
		CalculatedArrivalTime: schedule.CalculatedArrivalTime,
		CreatedAt:             schedule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             schedule.UpdatedAt.Format(time.RFC3339),
	}

	for _, wp := range schedule.Waypoints {
		resp.Waypoints = append(resp.Waypoints, dto.WaypointResponse{
			Name:        wp.Name,
			Lat:         wp.Lat,
			Lng:         wp.Lng,
			ArrivalTime: wp.ArrivalTime,
		})
	}

	for _, slot := range schedule.MealSlots {
		resp.MealSlots = append(resp.MealSlots, dto.MealSlotResponse{
			ID:                 slot.ID,
			MealType:           int(slot.MealType),
			ScheduledTime:      slot.ScheduledTime,
			Radius:             slot.Radius,
			CalculatedLocation: slot.CalculatedLocation,
			Restaurants:        restaurants[slot.ID],
			SelectedRestaurant: slot.SelectedRestaurant,
		})
	}

	return resp
}
