package model

import "time"

// MeasurementFields holds the numeric body measurements of one submission.
// Forearm and Calf are optional; nil means the field was not submitted.
type MeasurementFields struct {
	Weight   float64  `json:"weight"`
	Shoulder float64  `json:"shoulder"`
	Chest    float64  `json:"chest"`
	Arm      float64  `json:"arm"`
	Forearm  *float64 `json:"forearm,omitempty"`
	Waist    float64  `json:"waist"`
	Leg      float64  `json:"leg"`
	Calf     *float64 `json:"calf,omitempty"`
}

// Measurement is one persisted body-measurement entry.
// RecordedAt is assigned server-side at insert time and never changes,
// including on field updates.
type Measurement struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	MeasurementFields
	RecordedAt time.Time `json:"recorded_at"`
}

// Attribute names a plottable measurement field.
type Attribute string

// Known attributes, in canonical submission order.
const (
	AttrWeight   Attribute = "weight"
	AttrShoulder Attribute = "shoulder"
	AttrChest    Attribute = "chest"
	AttrArm      Attribute = "arm"
	AttrForearm  Attribute = "forearm"
	AttrWaist    Attribute = "waist"
	AttrLeg      Attribute = "leg"
	AttrCalf     Attribute = "calf"
)

// Attributes lists all known attributes in canonical order.
var Attributes = []Attribute{
	AttrWeight,
	AttrShoulder,
	AttrChest,
	AttrArm,
	AttrForearm,
	AttrWaist,
	AttrLeg,
	AttrCalf,
}

// ParseAttribute maps a raw query value to a known attribute.
// Unknown names fall back to weight; this is the documented default,
// not an error.
func ParseAttribute(s string) Attribute {
	for _, a := range Attributes {
		if string(a) == s {
			return a
		}
	}
	return AttrWeight
}

// Value returns the measurement's value for the given attribute.
// The second return is false when an optional field was not populated.
func (m *Measurement) Value(attr Attribute) (float64, bool) {
	switch attr {
	case AttrWeight:
		return m.Weight, true
	case AttrShoulder:
		return m.Shoulder, true
	case AttrChest:
		return m.Chest, true
	case AttrArm:
		return m.Arm, true
	case AttrForearm:
		if m.Forearm == nil {
			return 0, false
		}
		return *m.Forearm, true
	case AttrWaist:
		return m.Waist, true
	case AttrLeg:
		return m.Leg, true
	case AttrCalf:
		if m.Calf == nil {
			return 0, false
		}
		return *m.Calf, true
	default:
		return m.Weight, true
	}
}

// SeriesPoint is one (timestamp, value) pair of a series projection.
type SeriesPoint struct {
	RecordedAt time.Time `json:"recorded_at"`
	Value      float64   `json:"value"`
}

// ChartMeta is the title/axis-label triple consumed by the presentation layer.
type ChartMeta struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
}

var chartMeta = map[Attribute]ChartMeta{
	AttrWeight:   {Title: "Body weight over time", XLabel: "Date", YLabel: "Weight (kg)"},
	AttrShoulder: {Title: "Shoulder circumference over time", XLabel: "Date", YLabel: "Shoulder (cm)"},
	AttrChest:    {Title: "Chest circumference over time", XLabel: "Date", YLabel: "Chest (cm)"},
	AttrArm:      {Title: "Arm circumference over time", XLabel: "Date", YLabel: "Arm (cm)"},
	AttrForearm:  {Title: "Forearm circumference over time", XLabel: "Date", YLabel: "Forearm (cm)"},
	AttrWaist:    {Title: "Waist circumference over time", XLabel: "Date", YLabel: "Waist (cm)"},
	AttrLeg:      {Title: "Leg circumference over time", XLabel: "Date", YLabel: "Leg (cm)"},
	AttrCalf:     {Title: "Calf circumference over time", XLabel: "Date", YLabel: "Calf (cm)"},
}

// Meta returns the chart metadata for the attribute.
func (a Attribute) Meta() ChartMeta {
	if m, ok := chartMeta[a]; ok {
		return m
	}
	return chartMeta[AttrWeight]
}
