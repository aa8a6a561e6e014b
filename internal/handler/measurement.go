package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/handler/dto"
	"github.com/fitlog/fitlog/internal/service"
)

// MeasurementHandler handles measurement CRUD and the series projection.
type MeasurementHandler struct {
	svc    *service.MeasurementService
	logger *slog.Logger
}

// NewMeasurementHandler creates a new MeasurementHandler.
func NewMeasurementHandler(svc *service.MeasurementService, logger *slog.Logger) *MeasurementHandler {
	return &MeasurementHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/measurements. The body is a flat map of field
// name to raw string; values are validated and parsed server-side so the
// client can submit form input as-is.
func (h *MeasurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Record(r.Context(), principal.UserID, fields)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("measurement_recorded",
		"user_id", principal.UserID,
		"measurement_id", m.ID,
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusCreated, dto.ToMeasurementResponse(m))
}

// List handles GET /api/v1/measurements. Results are ordered oldest first.
func (h *MeasurementHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	measurements, err := h.svc.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMeasurementListResponse(measurements))
}

// Update handles PUT /api/v1/measurements/{id}. The original recording
// timestamp is preserved.
func (h *MeasurementHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, ok := measurementID(w, r)
	if !ok {
		return
	}

	fields, fok := decodeFields(w, r)
	if !fok {
		return
	}

	if err := h.svc.Update(r.Context(), principal.UserID, id, fields); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("measurement_updated",
		"user_id", principal.UserID,
		"measurement_id", id,
		"request_id", requestID(r),
	)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/measurements/{id}.
func (h *MeasurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, ok := measurementID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), principal.UserID, id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("measurement_deleted",
		"user_id", principal.UserID,
		"measurement_id", id,
		"request_id", requestID(r),
	)

	w.WriteHeader(http.StatusNoContent)
}

// Series handles GET /api/v1/measurements/series?data=weight. An unknown or
// missing data parameter falls back to weight.
func (h *MeasurementHandler) Series(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	chart, err := h.svc.ChartFor(r.Context(), principal.UserID, r.URL.Query().Get("data"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToChartResponse(chart))
}

// decodeFields decodes the flat field map body, writing the error response
// itself on failure.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return nil, false
	}
	return fields, true
}

// measurementID parses the {id} route parameter. A non-numeric id gets the
// same response as an absent row so URLs cannot be probed.
func measurementID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Measurement not found")
		return 0, false
	}
	return id, true
}
