package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlog/fitlog/internal/metrics"
	"github.com/fitlog/fitlog/internal/model"
)

const (
	// ConsumerGroup is the Redis consumer group name.
	ConsumerGroup = "activity_workers"

	// DefaultBatchSize is the max events per batch.
	DefaultBatchSize = 200

	// DefaultBlockTimeout is how long to block waiting for messages.
	DefaultBlockTimeout = 5 * time.Second

	// DefaultMaxRetries is the max insert attempts for a batch before it is
	// dropped.
	DefaultMaxRetries = 3
)

// Repository defines the interface for activity event persistence.
type Repository interface {
	BulkInsertActivity(ctx context.Context, events []*model.ActivityEvent) error
}

// Worker persists activity events from the Redis stream.
type Worker struct {
	redis        *redis.Client
	repo         Repository
	logger       *slog.Logger
	metrics      metrics.Recorder
	consumerID   string
	batchSize    int
	blockTimeout time.Duration
	maxRetries   int

	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// NewWorker creates a new activity worker.
func NewWorker(client *redis.Client, repo Repository, logger *slog.Logger, consumerID string, recorder metrics.Recorder) *Worker {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Worker{
		redis:        client,
		repo:         repo,
		logger:       logger.With("component", "activity.worker", "consumer_id", consumerID),
		metrics:      recorder,
		consumerID:   consumerID,
		batchSize:    DefaultBatchSize,
		blockTimeout: DefaultBlockTimeout,
		maxRetries:   DefaultMaxRetries,
	}
}

// Run starts the worker loop. Blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return errors.New("worker already started")
	}
	w.started = true
	w.done = make(chan struct{})
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	defer close(w.done)

	if err := w.ensureConsumerGroup(ctx); err != nil {
		return fmt.Errorf("ensure consumer group: %w", err)
	}

	w.logger.Info("activity worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("activity worker stopped")
			return nil
		default:
		}

		if err := w.consumeBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("batch consume failed", "error", err)
			// Back off briefly so a Redis outage doesn't spin the loop.
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}

		w.reportQueueDepth(ctx)
	}
}

// Shutdown stops the worker and waits for the in-flight batch to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ensureConsumerGroup creates the consumer group if it doesn't exist.
func (w *Worker) ensureConsumerGroup(ctx context.Context) error {
	err := w.redis.XGroupCreateMkStream(ctx, StreamKey, ConsumerGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// consumeBatch reads one batch from the stream, persists it, and acks.
func (w *Worker) consumeBatch(ctx context.Context) error {
	streams, err := w.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    ConsumerGroup,
		Consumer: w.consumerID,
		Streams:  []string{StreamKey, ">"},
		Count:    int64(w.batchSize),
		Block:    w.blockTimeout,
	}).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			// No messages within the block timeout.
			return nil
		}
		return fmt.Errorf("xreadgroup: %w", err)
	}

	for _, stream := range streams {
		if len(stream.Messages) == 0 {
			continue
		}

		events, ids := decodeMessages(stream.Messages)
		w.metrics.ObserveActivityBatchSize(len(events))

		if err := w.insertWithRetry(ctx, events); err != nil {
			w.logger.Error("dropping activity batch after retries",
				"batch_size", len(events),
				"error", err,
			)
			for range events {
				w.metrics.IncActivityEventProcessed("failed")
			}
		} else {
			for range events {
				w.metrics.IncActivityEventProcessed("success")
			}
		}

		// Ack either way; a batch that cannot be inserted after retries is
		// dropped rather than poisoning the stream.
		if err := w.redis.XAck(ctx, StreamKey, ConsumerGroup, ids...).Err(); err != nil {
			return fmt.Errorf("xack: %w", err)
		}
	}

	return nil
}

// insertWithRetry persists a batch, retrying transient failures.
func (w *Worker) insertWithRetry(ctx context.Context, events []*model.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}

	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.repo.BulkInsertActivity(ctx, events); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return err
}

// reportQueueDepth refreshes the stream depth gauge.
func (w *Worker) reportQueueDepth(ctx context.Context) {
	depth, err := w.redis.XLen(ctx, StreamKey).Result()
	if err != nil {
		return
	}
	w.metrics.SetActivityQueueDepth(depth)
}

// decodeMessages converts stream messages to activity events, skipping
// malformed payloads. The returned ids cover every message, including the
// skipped ones, so they all get acked.
func decodeMessages(messages []redis.XMessage) ([]*model.ActivityEvent, []string) {
	events := make([]*model.ActivityEvent, 0, len(messages))
	ids := make([]string, 0, len(messages))

	for _, msg := range messages {
		ids = append(ids, msg.ID)

		raw, ok := msg.Values["payload"].(string)
		if !ok {
			continue
		}

		var payload EventPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			continue
		}

		events = append(events, &model.ActivityEvent{
			UserID:     payload.UserID,
			Kind:       payload.Kind,
			Detail:     payload.Detail,
			OccurredAt: time.UnixMilli(payload.OccurredAt).UTC(),
		})
	}

	return events, ids
}
