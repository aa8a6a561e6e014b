package model

import (
	"testing"
	"time"
)

func TestParseAttribute_Known(t *testing.T) {
	t.Parallel()

	for _, a := range Attributes {
		if got := ParseAttribute(string(a)); got != a {
			t.Errorf("ParseAttribute(%q) = %q, want %q", a, got, a)
		}
	}
}

func TestParseAttribute_UnknownFallsBackToWeight(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "bogus_attribute", "WEIGHT", "height"} {
		if got := ParseAttribute(s); got != AttrWeight {
			t.Errorf("ParseAttribute(%q) = %q, want %q", s, got, AttrWeight)
		}
	}
}

func TestMeasurement_Value(t *testing.T) {
	t.Parallel()

	forearm := 31.5
	m := &Measurement{
		ID:     1,
		UserID: 7,
		MeasurementFields: MeasurementFields{
			Weight:   82,
			Shoulder: 118.5,
			Chest:    101,
			Arm:      36.5,
			Forearm:  &forearm,
			Waist:    84,
			Leg:      59,
		},
		RecordedAt: time.Now(),
	}

	if v, ok := m.Value(AttrShoulder); !ok || v != 118.5 {
		t.Errorf("Value(shoulder) = %v, %v, want 118.5, true", v, ok)
	}
	if v, ok := m.Value(AttrForearm); !ok || v != 31.5 {
		t.Errorf("Value(forearm) = %v, %v, want 31.5, true", v, ok)
	}
	if _, ok := m.Value(AttrCalf); ok {
		t.Error("Value(calf) should report not populated for nil field")
	}
}

func TestAttribute_Meta(t *testing.T) {
	t.Parallel()

	meta := AttrWaist.Meta()
	if meta.Title == "" || meta.XLabel == "" || meta.YLabel == "" {
		t.Errorf("Meta() returned incomplete metadata: %+v", meta)
	}

	// Unknown attributes chart as weight.
	if got := Attribute("bogus").Meta(); got != AttrWeight.Meta() {
		t.Errorf("unknown attribute Meta() = %+v, want weight meta", got)
	}
}
