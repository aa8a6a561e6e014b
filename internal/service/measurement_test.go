package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fitlog/fitlog/internal/model"
)

func newMeasurementFixture() (*MeasurementService, *fakeMeasurementStore, *fakePublisher) {
	store := newFakeMeasurementStore()
	publisher := &fakePublisher{}
	return NewMeasurementService(store, publisher, nil), store, publisher
}

func TestRecord_AndList(t *testing.T) {
	t.Parallel()

	svc, _, publisher := newMeasurementFixture()
	ctx := context.Background()

	first, err := svc.Record(ctx, 1, validFields())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected an assigned id")
	}
	if first.RecordedAt.IsZero() {
		t.Error("expected a server-assigned timestamp")
	}

	second := validFields()
	second["weight"] = "81.0"
	if _, err := svc.Record(ctx, 1, second); err != nil {
		t.Fatalf("record: %v", err)
	}

	// A different user's measurement must not show up.
	if _, err := svc.Record(ctx, 2, validFields()); err != nil {
		t.Fatalf("record: %v", err)
	}

	list, err := svc.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(list))
	}
	if list[0].ID != first.ID {
		t.Errorf("expected oldest first, got id %d", list[0].ID)
	}
	if list[1].Weight != 81.0 {
		t.Errorf("expected second weight 81.0, got %v", list[1].Weight)
	}

	kinds := publisher.published()
	if len(kinds) != 3 {
		t.Errorf("expected 3 activity events, got %d", len(kinds))
	}
}

func TestRecord_InvalidPersistsNothing(t *testing.T) {
	t.Parallel()

	svc, store, _ := newMeasurementFixture()
	ctx := context.Background()

	fields := validFields()
	fields["arm"] = "-2"

	if _, err := svc.Record(ctx, 1, fields); !errors.Is(err, ErrNegativeValue) {
		t.Fatalf("expected ErrNegativeValue, got %v", err)
	}

	if store.nextID != 0 {
		t.Error("expected nothing persisted on validation failure")
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	m, err := svc.Record(ctx, 1, validFields())
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	fields := validFields()
	fields["weight"] = "80.0"
	if err := svc.Update(ctx, 1, m.ID, fields); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := svc.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].Weight != 80.0 {
		t.Errorf("expected updated weight 80.0, got %v", list[0].Weight)
	}
	if !list[0].RecordedAt.Equal(m.RecordedAt) {
		t.Error("expected recorded_at unchanged by update")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	m, err := svc.Record(ctx, 1, validFields())
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// Nonexistent row.
	if err := svc.Update(ctx, 1, 999, validFields()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Someone else's row behaves exactly the same.
	if err := svc.Update(ctx, 2, m.ID, validFields()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign row, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	m, err := svc.Record(ctx, 1, validFields())
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := svc.Delete(ctx, 2, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign row, got %v", err)
	}

	if err := svc.Delete(ctx, 1, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Second delete of the same row.
	if err := svc.Delete(ctx, 1, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}

	list, err := svc.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty history, got %d rows", len(list))
	}
}

func TestSeriesFor(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	weights := []string{"83", "82", "81.5"}
	for _, w := range weights {
		fields := validFields()
		fields["weight"] = w
		if _, err := svc.Record(ctx, 1, fields); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	attr, points, err := svc.SeriesFor(ctx, 1, "weight")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if attr != model.AttrWeight {
		t.Errorf("expected weight attribute, got %s", attr)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Value != 83 || points[2].Value != 81.5 {
		t.Errorf("unexpected point values: %v", points)
	}
	for i := 1; i < len(points); i++ {
		if points[i].RecordedAt.Before(points[i-1].RecordedAt) {
			t.Error("expected points ordered by recording time")
		}
	}
}

func TestSeriesFor_UnknownAttributeFallsBackToWeight(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	fields := validFields()
	fields["weight"] = "77"
	if _, err := svc.Record(ctx, 1, fields); err != nil {
		t.Fatalf("record: %v", err)
	}

	attr, points, err := svc.SeriesFor(ctx, 1, "bogus")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if attr != model.AttrWeight {
		t.Errorf("expected fallback to weight, got %s", attr)
	}
	if len(points) != 1 || points[0].Value != 77 {
		t.Errorf("expected the weight series, got %v", points)
	}
}

func TestSeriesFor_SkipsUnsetOptional(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	// One measurement with a calf value, one without.
	withCalf := validFields()
	withCalf["calf"] = "38"
	if _, err := svc.Record(ctx, 1, withCalf); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Record(ctx, 1, validFields()); err != nil {
		t.Fatalf("record: %v", err)
	}

	_, points, err := svc.SeriesFor(ctx, 1, "calf")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected unset values skipped, got %d points", len(points))
	}
	if points[0].Value != 38 {
		t.Errorf("expected calf 38, got %v", points[0].Value)
	}
}

func TestChartFor(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMeasurementFixture()
	ctx := context.Background()

	if _, err := svc.Record(ctx, 1, validFields()); err != nil {
		t.Fatalf("record: %v", err)
	}

	chart, err := svc.ChartFor(ctx, 1, "chest")
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if chart.Attribute != model.AttrChest {
		t.Errorf("expected chest, got %s", chart.Attribute)
	}
	if chart.Meta.Title == "" || chart.Meta.YLabel == "" {
		t.Error("expected chart metadata to be populated")
	}
	if len(chart.Points) != 1 {
		t.Errorf("expected 1 point, got %d", len(chart.Points))
	}
}
