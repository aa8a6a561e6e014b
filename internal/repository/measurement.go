package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitlog/fitlog/internal/model"
)

// ErrMeasurementNotFound covers both absent rows and rows owned by another
// user; callers cannot distinguish the two.
var ErrMeasurementNotFound = errors.New("measurement not found")

// CreateMeasurement inserts a new measurement and fills in the generated id.
func (r *Repository) CreateMeasurement(ctx context.Context, m *model.Measurement) error {
	query := `
		INSERT INTO measurements (user_id, weight, shoulder, chest, arm, forearm, waist, leg, calf, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		m.UserID,
		m.Weight,
		m.Shoulder,
		m.Chest,
		m.Arm,
		m.Forearm,
		m.Waist,
		m.Leg,
		m.Calf,
		m.RecordedAt,
	).Scan(&m.ID)

	if err != nil {
		return fmt.Errorf("failed to create measurement: %w", err)
	}

	return nil
}

// UpdateMeasurementFields overwrites the measurement fields in place.
// recorded_at is deliberately untouched. The update is scoped to the owning
// user; zero rows affected means not found (or not owned).
func (r *Repository) UpdateMeasurementFields(ctx context.Context, id, userID int64, fields model.MeasurementFields) error {
	query := `
		UPDATE measurements
		SET weight = $3, shoulder = $4, chest = $5, arm = $6, forearm = $7, waist = $8, leg = $9, calf = $10
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		id,
		userID,
		fields.Weight,
		fields.Shoulder,
		fields.Chest,
		fields.Arm,
		fields.Forearm,
		fields.Waist,
		fields.Leg,
		fields.Calf,
	)

	if err != nil {
		return fmt.Errorf("failed to update measurement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}

	return nil
}

// DeleteMeasurement removes a measurement, scoped to the owning user.
func (r *Repository) DeleteMeasurement(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM measurements WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete measurement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}

	return nil
}

// ListMeasurements returns all measurements for the user ordered by creation
// time ascending, with id as the tiebreak for equal timestamps.
func (r *Repository) ListMeasurements(ctx context.Context, userID int64) ([]*model.Measurement, error) {
	query := `
		SELECT id, user_id, weight, shoulder, chest, arm, forearm, waist, leg, calf, recorded_at
		FROM measurements
		WHERE user_id = $1
		ORDER BY recorded_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	defer rows.Close()

	var measurements []*model.Measurement
	for rows.Next() {
		var m model.Measurement
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Weight,
			&m.Shoulder,
			&m.Chest,
			&m.Arm,
			&m.Forearm,
			&m.Waist,
			&m.Leg,
			&m.Calf,
			&m.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		measurements = append(measurements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate measurements: %w", err)
	}

	return measurements, nil
}
