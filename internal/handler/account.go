package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/handler/dto"
	"github.com/fitlog/fitlog/internal/service"
)

// AccountHandler handles operations on the authenticated account.
type AccountHandler struct {
	svc           *service.CredentialService
	logger        *slog.Logger
	secureCookies bool
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.CredentialService, logger *slog.Logger, secureCookies bool) *AccountHandler {
	return &AccountHandler{
		svc:           svc,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// Get handles GET /api/v1/account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.ToPrincipalResponse(principal))
}

// ChangeEmail handles PATCH /api/v1/account/email.
// Existing sessions are revoked; the client must log in again.
func (h *AccountHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	var req dto.ChangeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.ChangeEmail(r.Context(), principal, req.Email); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("email_changed",
		"user_id", principal.UserID,
		"request_id", requestID(r),
	)

	auth.ClearSessionCookies(w, h.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles PATCH /api/v1/account/password.
// Existing sessions are revoked; the client must log in again.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.ChangePasswordInput{
		Current:  req.Current,
		Password: req.Password,
		Confirm:  req.Confirm,
	}
	if err := h.svc.ChangePassword(r.Context(), principal, input); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("password_changed",
		"user_id", principal.UserID,
		"request_id", requestID(r),
	)

	auth.ClearSessionCookies(w, h.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/account.
// Owned measurements cascade; deletion is immediate and irreversible.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	if err := h.svc.DeleteAccount(r.Context(), principal); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("account_deleted",
		"user_id", principal.UserID,
		"request_id", requestID(r),
	)

	auth.ClearSessionCookies(w, h.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}
