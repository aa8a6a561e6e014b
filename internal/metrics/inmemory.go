package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered       uint64
	LoginSuccesses        uint64
	LoginFailures         uint64
	MeasurementsRecorded  uint64
	MeasurementsUpdated   uint64
	MeasurementsDeleted   uint64
	SeriesDurationCount   uint64
	SeriesDurationTotalNs int64
	ActivityPublished     uint64
	ActivityDropped       uint64
	ActivityProcessed     uint64
	ActivityFailed        uint64
	ActivityQueueDepth    int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered       uint64
	loginSuccesses        uint64
	loginFailures         uint64
	measurementsRecorded  uint64
	measurementsUpdated   uint64
	measurementsDeleted   uint64
	seriesDurationCount   uint64
	seriesDurationTotalNs int64
	activityPublished     uint64
	activityDropped       uint64
	activityProcessed     uint64
	activityFailed        uint64
	activityQueueDepth    int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:       atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:        atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:         atomic.LoadUint64(&m.loginFailures),
		MeasurementsRecorded:  atomic.LoadUint64(&m.measurementsRecorded),
		MeasurementsUpdated:   atomic.LoadUint64(&m.measurementsUpdated),
		MeasurementsDeleted:   atomic.LoadUint64(&m.measurementsDeleted),
		SeriesDurationCount:   atomic.LoadUint64(&m.seriesDurationCount),
		SeriesDurationTotalNs: atomic.LoadInt64(&m.seriesDurationTotalNs),
		ActivityPublished:     atomic.LoadUint64(&m.activityPublished),
		ActivityDropped:       atomic.LoadUint64(&m.activityDropped),
		ActivityProcessed:     atomic.LoadUint64(&m.activityProcessed),
		ActivityFailed:        atomic.LoadUint64(&m.activityFailed),
		ActivityQueueDepth:    atomic.LoadInt64(&m.activityQueueDepth),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncMeasurementRecorded increments the measurement-recorded counter.
func (m *InMemoryRecorder) IncMeasurementRecorded() {
	atomic.AddUint64(&m.measurementsRecorded, 1)
}

// IncMeasurementUpdated increments the measurement-updated counter.
func (m *InMemoryRecorder) IncMeasurementUpdated() {
	atomic.AddUint64(&m.measurementsUpdated, 1)
}

// IncMeasurementDeleted increments the measurement-deleted counter.
func (m *InMemoryRecorder) IncMeasurementDeleted() {
	atomic.AddUint64(&m.measurementsDeleted, 1)
}

// ObserveSeriesDuration records a series projection duration.
func (m *InMemoryRecorder) ObserveSeriesDuration(duration time.Duration) {
	atomic.AddUint64(&m.seriesDurationCount, 1)
	atomic.AddInt64(&m.seriesDurationTotalNs, duration.Nanoseconds())
}

// IncActivityEventPublished increments the publish counter by status.
func (m *InMemoryRecorder) IncActivityEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.activityPublished, 1)
		return
	}
	atomic.AddUint64(&m.activityDropped, 1)
}

// IncActivityEventProcessed increments the processed counter by status.
func (m *InMemoryRecorder) IncActivityEventProcessed(status string) {
	if status == "success" {
		atomic.AddUint64(&m.activityProcessed, 1)
		return
	}
	atomic.AddUint64(&m.activityFailed, 1)
}

// ObserveActivityBatchSize is tracked only via the processed counters.
func (m *InMemoryRecorder) ObserveActivityBatchSize(size int) {}

// SetActivityQueueDepth records the current stream depth.
func (m *InMemoryRecorder) SetActivityQueueDepth(depth int64) {
	atomic.StoreInt64(&m.activityQueueDepth, depth)
}
