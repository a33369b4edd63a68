package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/pkg/errors"
	"github.com/schedule-microservice/internal/pkg/utils"
	"github.com/schedule-microservice/internal/pkg/validator"
	"github.com/schedule-microservice/internal/usecase"
	"github.com/schedule-microservice/internal/usecase/dto"
)

// ScheduleHandler serves the schedule CRUD and calculation endpoints.
type ScheduleHandler struct {
	scheduleUC *usecase.ScheduleUseCase
	logger     *zap.Logger
}

func NewScheduleHandler(scheduleUC *usecase.ScheduleUseCase, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUC: scheduleUC,
		logger:     logger,
	}
}

// userID reads the caller identity injected by the gateway.
func userID(c *fiber.Ctx) string {
	return c.Get("X-User-ID")
}

// CreateSchedule godoc
// @Summary Create a schedule
// @Description Creates a travel schedule, fetches the route prediction, resolves meal slot locations and waypoint arrival times, and returns the detail with restaurant candidates per slot.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param request body dto.CreateScheduleRequest true "Schedule to create"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	req.UserID = userID(c)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.scheduleUC.CreateSchedule(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListSchedules godoc
// @Summary List the caller's schedules
// @Tags Schedules
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/schedules [get]
func (h *ScheduleHandler) ListSchedules(c *fiber.Ctx) error {
	uid := userID(c)
	if uid == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.scheduleUC.ListSchedules(c.Context(), uid)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetSchedule godoc
// @Summary Get schedule detail
// @Description Returns the schedule with resolved slot locations, waypoint arrival times and nearby restaurant candidates.
// @Tags Schedules
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Schedule ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleResponse}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	uid := userID(c)
	if uid == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.scheduleUC.GetSchedule(c.Context(), uid, c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// UpdateSchedule godoc
// @Summary Update a schedule
// @Description Replaces the schedule contents and recalculates the route.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "New schedule contents"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [put]
func (h *ScheduleHandler) UpdateSchedule(c *fiber.Ctx) error {
	uid := userID(c)
	if uid == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.scheduleUC.UpdateSchedule(c.Context(), uid, c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// DeleteSchedule godoc
// @Summary Delete a schedule
// @Tags Schedules
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Schedule ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	uid := userID(c)
	if uid == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.scheduleUC.DeleteSchedule(c.Context(), uid, c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// SelectRestaurant godoc
// @Summary Select a restaurant for a meal slot
// @Tags Schedules
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Schedule ID"
// @Param slot_id path string true "Meal slot ID"
// @Param request body dto.SelectRestaurantRequest true "Chosen restaurant"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id}/slots/{slot_id}/restaurant [post]
func (h *ScheduleHandler) SelectRestaurant(c *fiber.Ctx) error {
	uid := userID(c)
	if uid == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.SelectRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	err := h.scheduleUC.SelectRestaurant(c.Context(), uid, c.Params("id"), c.Params("slot_id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"selected": true}, nil)
}

// Recalculate godoc
// @Summary Enqueue an async recalculation
// @Description Publishes a calculation job; SELECT recalculates from the stored departure, UPDATE reroutes from the reported current position.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Schedule ID"
// @Param request body dto.RecalculateRequest true "Recalculation trigger"
// @Success 200 {object} utils.SuccessResponse{data=dto.RecalculateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id}/recalculate [post]
func (h *ScheduleHandler) Recalculate(c *fiber.Ctx) error {
	uid := userID(c)
	if uid == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.RecalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.scheduleUC.Recalculate(c.Context(), uid, c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
