package activity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlog/fitlog/internal/model"
)

func TestDecodeMessages(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(EventPayload{
		UserID:     7,
		Kind:       model.ActivityMeasurementRecorded,
		OccurredAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	messages := []redis.XMessage{
		{ID: "1-0", Values: map[string]interface{}{"payload": string(payload)}},
		{ID: "2-0", Values: map[string]interface{}{"payload": "not json"}},
		{ID: "3-0", Values: map[string]interface{}{"other": "field"}},
	}

	events, ids := decodeMessages(messages)

	if len(events) != 1 {
		t.Fatalf("decoded %d events, want 1", len(events))
	}
	if events[0].UserID != 7 || events[0].Kind != model.ActivityMeasurementRecorded {
		t.Errorf("event = %+v", events[0])
	}
	if !events[0].OccurredAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("OccurredAt = %v", events[0].OccurredAt)
	}

	// Malformed messages are still acked.
	if len(ids) != 3 {
		t.Errorf("got %d ids, want 3 (malformed messages must be acked)", len(ids))
	}
}

func TestEventPayload_RoundTrip(t *testing.T) {
	t.Parallel()

	in := EventPayload{UserID: 42, Kind: model.ActivityUserLogin, Detail: "cli", OccurredAt: 1700000000000}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out EventPayload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
