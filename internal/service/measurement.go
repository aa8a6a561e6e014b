package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitlog/fitlog/internal/metrics"
	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
)

// MeasurementService handles measurement CRUD and the history/series
// projection.
type MeasurementService struct {
	store    MeasurementStore
	activity ActivityPublisher
	metrics  metrics.Recorder
}

// NewMeasurementService creates a new MeasurementService.
func NewMeasurementService(store MeasurementStore, activity ActivityPublisher, recorder metrics.Recorder) *MeasurementService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MeasurementService{
		store:    store,
		activity: activity,
		metrics:  recorder,
	}
}

// Record validates the submitted field map and persists a new measurement
// with a server-assigned timestamp. Nothing is persisted on validation
// failure.
func (s *MeasurementService) Record(ctx context.Context, userID int64, fields map[string]string) (*model.Measurement, error) {
	parsed, err := ParseFields(fields)
	if err != nil {
		return nil, err
	}

	m := &model.Measurement{
		UserID:            userID,
		MeasurementFields: parsed,
		RecordedAt:        time.Now().UTC(),
	}
	if err := s.store.CreateMeasurement(ctx, m); err != nil {
		return nil, fmt.Errorf("create measurement: %w", err)
	}

	s.metrics.IncMeasurementRecorded()
	if s.activity != nil {
		s.activity.PublishAsync(userID, model.ActivityMeasurementRecorded, "")
	}

	return m, nil
}

// Update re-validates the field map and overwrites the measurement fields in
// place. The recorded-at timestamp is unchanged. A measurement that does not
// exist or belongs to another user yields ErrNotFound; existence of foreign
// records is never revealed.
func (s *MeasurementService) Update(ctx context.Context, userID, id int64, fields map[string]string) error {
	parsed, err := ParseFields(fields)
	if err != nil {
		return err
	}

	if err := s.store.UpdateMeasurementFields(ctx, id, userID, parsed); err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update measurement: %w", err)
	}

	s.metrics.IncMeasurementUpdated()
	if s.activity != nil {
		s.activity.PublishAsync(userID, model.ActivityMeasurementUpdated, "")
	}

	return nil
}

// Delete removes the measurement. No soft-delete; deletion is immediate and
// irreversible. Ownership is enforced the same way as Update.
func (s *MeasurementService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteMeasurement(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete measurement: %w", err)
	}

	s.metrics.IncMeasurementDeleted()
	if s.activity != nil {
		s.activity.PublishAsync(userID, model.ActivityMeasurementDeleted, "")
	}

	return nil
}

// ListForUser returns all of the user's measurements ordered by creation
// time ascending. No pagination; histories are small.
func (s *MeasurementService) ListForUser(ctx context.Context, userID int64) ([]*model.Measurement, error) {
	return s.store.ListMeasurements(ctx, userID)
}

// SeriesFor projects the user's history onto one attribute as ordered
// (timestamp, value) pairs. Unknown attribute names fall back to weight.
// Measurements without a value for an optional attribute are skipped.
func (s *MeasurementService) SeriesFor(ctx context.Context, userID int64, attributeName string) (model.Attribute, []model.SeriesPoint, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSeriesDuration(time.Since(start))
	}()

	attr := model.ParseAttribute(attributeName)

	measurements, err := s.store.ListMeasurements(ctx, userID)
	if err != nil {
		return attr, nil, err
	}

	points := make([]model.SeriesPoint, 0, len(measurements))
	for _, m := range measurements {
		value, ok := m.Value(attr)
		if !ok {
			continue
		}
		points = append(points, model.SeriesPoint{RecordedAt: m.RecordedAt, Value: value})
	}

	return attr, points, nil
}

// Chart bundles a series projection with its presentation metadata.
type Chart struct {
	Attribute model.Attribute     `json:"attribute"`
	Meta      model.ChartMeta     `json:"meta"`
	Points    []model.SeriesPoint `json:"points"`
}

// ChartFor returns the series for the attribute together with the
// title/axis-label triple the presentation layer consumes.
func (s *MeasurementService) ChartFor(ctx context.Context, userID int64, attributeName string) (*Chart, error) {
	attr, points, err := s.SeriesFor(ctx, userID, attributeName)
	if err != nil {
		return nil, err
	}
	return &Chart{
		Attribute: attr,
		Meta:      attr.Meta(),
		Points:    points,
	}, nil
}
