package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fitlog/fitlog/internal/model"
)

// BulkInsertActivity inserts a batch of activity events in one round trip.
func (r *Repository) BulkInsertActivity(ctx context.Context, events []*model.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{e.UserID, e.Kind, e.Detail, e.OccurredAt})
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"activity_events"},
		[]string{"user_id", "kind", "detail", "occurred_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert activity events: %w", err)
	}

	return nil
}

// ListActivity returns the user's most recent activity events, newest first.
func (r *Repository) ListActivity(ctx context.Context, userID int64, limit int) ([]*model.ActivityEvent, error) {
	query := `
		SELECT id, user_id, kind, detail, occurred_at
		FROM activity_events
		WHERE user_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	defer rows.Close()

	var events []*model.ActivityEvent
	for rows.Next() {
		var e model.ActivityEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity events: %w", err)
	}

	return events, nil
}
