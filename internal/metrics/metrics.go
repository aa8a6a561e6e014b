// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Credential metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()

	// Measurement metrics
	IncMeasurementRecorded()
	IncMeasurementUpdated()
	IncMeasurementDeleted()
	ObserveSeriesDuration(duration time.Duration)

	// Activity pipeline metrics
	IncActivityEventPublished(status string) // status: "success" or "dropped"
	IncActivityEventProcessed(status string) // status: "success" or "failed"
	ObserveActivityBatchSize(size int)
	SetActivityQueueDepth(depth int64)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
