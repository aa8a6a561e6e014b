package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fitlog/fitlog/internal/model"
)

// fieldOrder is the canonical validation order of submitted fields. When
// several fields are invalid, the first failing field in this order is the
// one reported.
var fieldOrder = []model.Attribute{
	model.AttrWeight,
	model.AttrShoulder,
	model.AttrChest,
	model.AttrArm,
	model.AttrForearm,
	model.AttrWaist,
	model.AttrLeg,
	model.AttrCalf,
}

// optionalFields may be omitted from a submission entirely; when present
// they are validated like any other field.
var optionalFields = map[model.Attribute]bool{
	model.AttrForearm: true,
	model.AttrCalf:    true,
}

// ParseFields validates a submitted field map and converts it to typed
// measurement fields. It is pure; the caller decides whether to persist.
//
// Per field, in order: empty string -> ErrEmptyField, unparsable number ->
// ErrInvalidNumber, value below zero -> ErrNegativeValue. "0" is valid.
// Values are trimmed before parsing, so surrounding whitespace is accepted
// but a whitespace-only value fails as a non-number.
func ParseFields(fields map[string]string) (model.MeasurementFields, error) {
	var out model.MeasurementFields

	for _, name := range fieldOrder {
		raw, present := fields[string(name)]
		if !present && optionalFields[name] {
			continue
		}

		value, err := parseField(name, raw)
		if err != nil {
			return model.MeasurementFields{}, err
		}

		switch name {
		case model.AttrWeight:
			out.Weight = value
		case model.AttrShoulder:
			out.Shoulder = value
		case model.AttrChest:
			out.Chest = value
		case model.AttrArm:
			out.Arm = value
		case model.AttrForearm:
			v := value
			out.Forearm = &v
		case model.AttrWaist:
			out.Waist = value
		case model.AttrLeg:
			out.Leg = value
		case model.AttrCalf:
			v := value
			out.Calf = &v
		}
	}

	return out, nil
}

// parseField validates a single raw field value.
func parseField(name model.Attribute, raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("field %s: %w", name, ErrEmptyField)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, ErrInvalidNumber)
	}

	if value < 0 {
		return 0, fmt.Errorf("field %s: %w", name, ErrNegativeValue)
	}

	return value, nil
}
