// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/service"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
	Remember bool   `json:"remember,omitempty"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

// ChangeEmailRequest represents the request body for an email change.
type ChangeEmailRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	Current  string `json:"current"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// PrincipalResponse represents the authenticated identity.
type PrincipalResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// MeasurementResponse represents a measurement in API responses.
type MeasurementResponse struct {
	ID         int64     `json:"id"`
	Weight     float64   `json:"weight"`
	Shoulder   float64   `json:"shoulder"`
	Chest      float64   `json:"chest"`
	Arm        float64   `json:"arm"`
	Forearm    *float64  `json:"forearm,omitempty"`
	Waist      float64   `json:"waist"`
	Leg        float64   `json:"leg"`
	Calf       *float64  `json:"calf,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// MeasurementListResponse represents a user's measurement history.
type MeasurementListResponse struct {
	Data []MeasurementResponse `json:"data"`
}

// SeriesPointResponse is one point of a series projection.
type SeriesPointResponse struct {
	RecordedAt time.Time `json:"recorded_at"`
	Value      float64   `json:"value"`
}

// ChartResponse is the series projection plus presentation metadata.
type ChartResponse struct {
	Attribute string                `json:"attribute"`
	Title     string                `json:"title"`
	XLabel    string                `json:"x_label"`
	YLabel    string                `json:"y_label"`
	Points    []SeriesPointResponse `json:"points"`
}

// ActivityEventResponse is one activity feed entry.
type ActivityEventResponse struct {
	Kind       string    `json:"kind"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityListResponse is the recent activity feed.
type ActivityListResponse struct {
	Data []ActivityEventResponse `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToPrincipalResponse converts a Principal to its response DTO.
func ToPrincipalResponse(p *model.Principal) *PrincipalResponse {
	return &PrincipalResponse{
		UserID: p.UserID,
		Email:  p.Email,
	}
}

// ToMeasurementResponse converts a Measurement to its response DTO.
func ToMeasurementResponse(m *model.Measurement) MeasurementResponse {
	return MeasurementResponse{
		ID:         m.ID,
		Weight:     m.Weight,
		Shoulder:   m.Shoulder,
		Chest:      m.Chest,
		Arm:        m.Arm,
		Forearm:    m.Forearm,
		Waist:      m.Waist,
		Leg:        m.Leg,
		Calf:       m.Calf,
		RecordedAt: m.RecordedAt,
	}
}

// ToMeasurementListResponse converts a measurement history.
func ToMeasurementListResponse(measurements []*model.Measurement) *MeasurementListResponse {
	data := make([]MeasurementResponse, len(measurements))
	for i, m := range measurements {
		data[i] = ToMeasurementResponse(m)
	}
	return &MeasurementListResponse{Data: data}
}

// ToChartResponse converts a chart projection.
func ToChartResponse(chart *service.Chart) *ChartResponse {
	points := make([]SeriesPointResponse, len(chart.Points))
	for i, p := range chart.Points {
		points[i] = SeriesPointResponse{RecordedAt: p.RecordedAt, Value: p.Value}
	}
	return &ChartResponse{
		Attribute: string(chart.Attribute),
		Title:     chart.Meta.Title,
		XLabel:    chart.Meta.XLabel,
		YLabel:    chart.Meta.YLabel,
		Points:    points,
	}
}

// ToActivityListResponse converts activity feed entries.
func ToActivityListResponse(events []*model.ActivityEvent) *ActivityListResponse {
	data := make([]ActivityEventResponse, len(events))
	for i, e := range events {
		data[i] = ActivityEventResponse{
			Kind:       e.Kind,
			Detail:     e.Detail,
			OccurredAt: e.OccurredAt,
		}
	}
	return &ActivityListResponse{Data: data}
}
