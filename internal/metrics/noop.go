package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncMeasurementRecorded is a no-op.
func (n *NoopRecorder) IncMeasurementRecorded() {}

// IncMeasurementUpdated is a no-op.
func (n *NoopRecorder) IncMeasurementUpdated() {}

// IncMeasurementDeleted is a no-op.
func (n *NoopRecorder) IncMeasurementDeleted() {}

// ObserveSeriesDuration is a no-op.
func (n *NoopRecorder) ObserveSeriesDuration(duration time.Duration) {}

// IncActivityEventPublished is a no-op.
func (n *NoopRecorder) IncActivityEventPublished(status string) {}

// IncActivityEventProcessed is a no-op.
func (n *NoopRecorder) IncActivityEventProcessed(status string) {}

// ObserveActivityBatchSize is a no-op.
func (n *NoopRecorder) ObserveActivityBatchSize(size int) {}

// SetActivityQueueDepth is a no-op.
func (n *NoopRecorder) SetActivityQueueDepth(depth int64) {}
