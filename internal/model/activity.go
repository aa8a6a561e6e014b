package model

import "time"

// Activity event kinds.
const (
	ActivityUserRegistered      = "user.registered"
	ActivityUserLogin           = "user.login"
	ActivityEmailChanged        = "email.changed"
	ActivityPasswordChanged     = "password.changed"
	ActivityAccountDeleted      = "account.deleted"
	ActivityMeasurementRecorded = "measurement.recorded"
	ActivityMeasurementUpdated  = "measurement.updated"
	ActivityMeasurementDeleted  = "measurement.deleted"
)

// ActivityEvent is one entry of a user's activity feed.
type ActivityEvent struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Kind       string    `json:"kind"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
