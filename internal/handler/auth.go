package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/handler/dto"
	"github.com/fitlog/fitlog/internal/service"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	svc           *service.CredentialService
	logger        *slog.Logger
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.CredentialService, logger *slog.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	session, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Confirm:  req.Confirm,
		Remember: req.Remember,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", session.Principal.UserID,
		"request_id", requestID(r),
	)

	h.setCookies(w, session)
	writeJSON(w, http.StatusCreated, dto.ToPrincipalResponse(&session.Principal))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	session, err := h.svc.Authenticate(r.Context(), service.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_login",
		"user_id", session.Principal.UserID,
		"request_id", requestID(r),
	)

	h.setCookies(w, session)
	writeJSON(w, http.StatusOK, dto.ToPrincipalResponse(&session.Principal))
}

// Logout handles POST /api/v1/auth/logout.
// Logout is idempotent; a request without a session cookie still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.SessionCookie); err == nil && c.Value != "" {
		if err := h.svc.Logout(r.Context(), c.Value); err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
	}

	auth.ClearSessionCookies(w, h.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// setCookies writes the session cookie and, when present, the remember-me
// cookie.
func (h *AuthHandler) setCookies(w http.ResponseWriter, session *service.Session) {
	auth.SetSessionCookie(w, session.Token, session.TTL, h.secureCookies)
	if session.RememberToken != "" {
		auth.SetRememberCookie(w, session.RememberToken, session.RememberTTL, h.secureCookies)
	}
}
