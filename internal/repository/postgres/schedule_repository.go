package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/domain/repository"
	apperrors "github.com/schedule-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type scheduleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewScheduleRepository creates the Postgres-backed schedule repository.
func NewScheduleRepository(db *DB, logger *zap.Logger) repository.ScheduleRepository {
	return &scheduleRepository{
		db:     db,
		logger: logger,
	}
}

type scheduleRow struct {
	ID                    string         `db:"id"`
	UserID                string         `db:"user_id"`
	Title                 string         `db:"title"`
	Purpose               sql.NullString `db:"purpose"`
	DepartureTime         string         `db:"departure_time"`
	Departure             []byte         `db:"departure"`
	Destination           []byte         `db:"destination"`
	Waypoints             []byte         `db:"waypoints"`
	Companions            pq.StringArray `db:"companions"`
	CalculatedArrivalTime sql.NullString `db:"calculated_arrival_time"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

type slotRow struct {
	ID                 string `db:"id"`
	ScheduleID         string `db:"schedule_id"`
	MealType           int    `db:"meal_type"`
	ScheduledTime      string `db:"scheduled_time"`
	Radius             int    `db:"radius"`
	CalculatedLocation []byte `db:"calculated_location"`
	SelectedRestaurant []byte `db:"selected_restaurant"`
	Position           int    `db:"position"`
}

func (r *scheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	row, err := toScheduleRow(schedule)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO schedules (
			id, user_id, title, purpose, departure_time,
			departure, destination, waypoints, companions,
			calculated_arrival_time, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :purpose, :departure_time,
			:departure, :destination, :waypoints, :companions,
			:calculated_arrival_time, now(), now()
		)`, row)
	if err != nil {
		r.logger.Error("Failed to insert schedule",
			zap.String("schedule_id", schedule.ID),
			zap.Error(err))
		return fmt.Errorf("insert schedule: %w", err)
	}

	if err := r.insertSlots(ctx, tx, schedule); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	r.logger.Debug("Schedule saved", zap.String("schedule_id", schedule.ID))
	return nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	row, err := toScheduleRow(schedule)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
		UPDATE schedules SET
			title = :title,
			purpose = :purpose,
			departure_time = :departure_time,
			departure = :departure,
			destination = :destination,
			waypoints = :waypoints,
			companions = :companions,
			calculated_arrival_time = :calculated_arrival_time,
			updated_at = now()
		WHERE id = :id`, row)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrScheduleNotFound
	}

	// Slots are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM meal_time_slots WHERE schedule_id = $1`, schedule.ID); err != nil {
		return fmt.Errorf("delete slots: %w", err)
	}
	if err := r.insertSlots(ctx, tx, schedule); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	r.logger.Debug("Schedule updated", zap.String("schedule_id", schedule.ID))
	return nil
}

func (r *scheduleRepository) insertSlots(ctx context.Context, tx *sqlx.Tx, schedule *domain.Schedule) error {
	for i, slot := range schedule.MealSlots {
		row, err := toSlotRow(schedule.ID, i, slot)
		if err != nil {
			return err
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO meal_time_slots (
				id, schedule_id, meal_type, scheduled_time, radius,
				calculated_location, selected_restaurant, position
			) VALUES (
				:id, :schedule_id, :meal_type, :scheduled_time, :radius,
				:calculated_location, :selected_restaurant, :position
			)`, row)
		if err != nil {
			return fmt.Errorf("insert slot %s: %w", slot.ID, err)
		}
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	var row scheduleRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, user_id, title, purpose, departure_time,
		       departure, destination, waypoints, companions,
		       calculated_arrival_time, created_at, updated_at
		FROM schedules WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select schedule: %w", err)
	}

	schedule, err := fromScheduleRow(row)
	if err != nil {
		return nil, err
	}

	var slotRows []slotRow
	err = r.db.SelectContext(ctx, &slotRows, `
		SELECT id, schedule_id, meal_type, scheduled_time, radius,
		       calculated_location, selected_restaurant, position
		FROM meal_time_slots
		WHERE schedule_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("select slots: %w", err)
	}

	for _, sr := range slotRows {
		slot, err := fromSlotRow(sr)
		if err != nil {
			return nil, err
		}
		schedule.MealSlots = append(schedule.MealSlots, slot)
	}

	return schedule, nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID string) ([]domain.Schedule, error) {
	var rows []scheduleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, title, purpose, departure_time,
		       departure, destination, waypoints, companions,
		       calculated_arrival_time, created_at, updated_at
		FROM schedules
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}

	schedules := make([]domain.Schedule, 0, len(rows))
	for _, row := range rows {
		schedule, err := fromScheduleRow(row)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *schedule)
	}

	return schedules, nil
}

func (r *scheduleRepository) SaveSelectedRestaurant(ctx context.Context, scheduleID, slotID string, restaurant *domain.Restaurant) error {
	payload, err := json.Marshal(restaurant)
	if err != nil {
		return fmt.Errorf("marshal restaurant: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE meal_time_slots
		SET selected_restaurant = $1
		WHERE id = $2 AND schedule_id = $3`, payload, slotID, scheduleID)
	if err != nil {
		return fmt.Errorf("update selected restaurant: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrSlotNotFound
	}

	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

func toScheduleRow(s *domain.Schedule) (*scheduleRow, error) {
	departure, err := json.Marshal(s.Departure)
	if err != nil {
		return nil, fmt.Errorf("marshal departure: %w", err)
	}
	destination, err := json.Marshal(s.Destination)
	if err != nil {
		return nil, fmt.Errorf("marshal destination: %w", err)
	}
	waypoints, err := json.Marshal(s.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("marshal waypoints: %w", err)
	}

	return &scheduleRow{
		ID:                    s.ID,
		UserID:                s.UserID,
		Title:                 s.Title,
		Purpose:               sql.NullString{String: s.Purpose, Valid: s.Purpose != ""},
		DepartureTime:         s.DepartureTime,
		Departure:             departure,
		Destination:           destination,
		Waypoints:             waypoints,
		Companions:            pq.StringArray(s.Companions),
		CalculatedArrivalTime: sql.NullString{String: s.CalculatedArrivalTime, Valid: s.CalculatedArrivalTime != ""},
	}, nil
}

func fromScheduleRow(row scheduleRow) (*domain.Schedule, error) {
	schedule := &domain.Schedule{
		ID:                    row.ID,
		UserID:                row.UserID,
		Title:                 row.Title,
		Purpose:               row.Purpose.String,
		DepartureTime:         row.DepartureTime,
		Companions:            []string(row.Companions),
		CalculatedArrivalTime: row.CalculatedArrivalTime.String,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}

	if err := json.Unmarshal(row.Departure, &schedule.Departure); err != nil {
		return nil, fmt.Errorf("unmarshal departure: %w", err)
	}
	if err := json.Unmarshal(row.Destination, &schedule.Destination); err != nil {
		return nil, fmt.Errorf("unmarshal destination: %w", err)
	}
	if len(row.Waypoints) > 0 {
		if err := json.Unmarshal(row.Waypoints, &schedule.Waypoints); err != nil {
			return nil, fmt.Errorf("unmarshal waypoints: %w", err)
		}
	}

	return schedule, nil
}

func toSlotRow(scheduleID string, position int, slot domain.MealSlot) (*slotRow, error) {
	row := &slotRow{
		ID:            slot.ID,
		ScheduleID:    scheduleID,
		MealType:      int(slot.MealType),
		ScheduledTime: slot.ScheduledTime,
		Radius:        slot.Radius,
		Position:      position,
	}

	if slot.CalculatedLocation != nil {
		payload, err := json.Marshal(slot.CalculatedLocation)
		if err != nil {
			return nil, fmt.Errorf("marshal calculated location: %w", err)
		}
		row.CalculatedLocation = payload
	}
	if slot.SelectedRestaurant != nil {
		payload, err := json.Marshal(slot.SelectedRestaurant)
		if err != nil {
			return nil, fmt.Errorf("marshal selected restaurant: %w", err)
		}
		row.SelectedRestaurant = payload
	}

	return row, nil
}

func fromSlotRow(row slotRow) (domain.MealSlot, error) {
	slot := domain.MealSlot{
		ID:            row.ID,
		MealType:      domain.MealType(row.MealType),
		ScheduledTime: row.ScheduledTime,
		Radius:        row.Radius,
	}

	if len(row.CalculatedLocation) > 0 {
		slot.CalculatedLocation = &domain.SlotLocation{}
		if err := json.Unmarshal(row.CalculatedLocation, slot.CalculatedLocation); err != nil {
			return domain.MealSlot{}, fmt.Errorf("unmarshal calculated location: %w", err)
		}
	}
	if len(row.SelectedRestaurant) > 0 {
		slot.SelectedRestaurant = &domain.Restaurant{}
		if err := json.Unmarshal(row.SelectedRestaurant, slot.SelectedRestaurant); err != nil {
			return domain.MealSlot{}, fmt.Errorf("unmarshal selected restaurant: %w", err)
		}
	}

	return slot, nil
}
