package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/handler/dto"
	"github.com/fitlog/fitlog/internal/model"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// activityLister reads the persisted activity feed. Implemented by
// *repository.Repository.
type activityLister interface {
	ListActivity(ctx context.Context, userID int64, limit int) ([]*model.ActivityEvent, error)
}

// ActivityHandler serves the account activity feed.
type ActivityHandler struct {
	store  activityLister
	logger *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(store activityLister, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/v1/activity. Events are written by an asynchronous
// worker, so very recent actions may not appear yet.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxActivityLimit)
		}
	}

	events, err := h.store.ListActivity(r.Context(), principal.UserID, limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActivityListResponse(events))
}
