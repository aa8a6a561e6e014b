// Package activity provides asynchronous capture of the per-user activity
// feed. Events are enqueued to a Redis stream and persisted in batches by a
// background worker, so feed bookkeeping never slows down or fails the
// originating request.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlog/fitlog/internal/metrics"
)

const (
	// StreamKey is the Redis stream for activity events.
	StreamKey = "stream:activity_events"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for a Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// EventPayload is the compact event format on the Redis stream.
type EventPayload struct {
	UserID     int64  `json:"uid"`
	Kind       string `json:"k"`
	Detail     string `json:"d,omitempty"`
	OccurredAt int64  `json:"t"` // Unix milliseconds
}

// Publisher enqueues activity events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new activity event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "activity.publisher"),
		metrics: recorder,
	}
}

// Publish adds an activity event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event EventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget).
func (p *Publisher) PublishAsync(userID int64, kind, detail string) {
	event := EventPayload{
		UserID:     userID,
		Kind:       kind,
		Detail:     detail,
		OccurredAt: time.Now().UnixMilli(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		if _, err := p.Publish(ctx, event); err != nil {
			p.logger.Warn("failed to publish activity event",
				"kind", event.Kind,
				"error", err,
			)
			p.metrics.IncActivityEventPublished("dropped")
			return
		}
		p.metrics.IncActivityEventPublished("success")
	}()
}
