// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fitlog/fitlog/internal/handler/dto"
	"github.com/fitlog/fitlog/internal/middleware"
	"github.com/fitlog/fitlog/internal/service"
)

// Handler wraps application-wide HTTP handlers.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Root is a simple info endpoint.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "fitlog API",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// requestID returns the request ID injected by the middleware.
func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeServiceError maps a service error to an HTTP response. Everything in
// the user-input taxonomy is a 4xx; anything else is a generic 500 because
// it is not user-correctable.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrFieldsMissing):
		writeError(w, http.StatusBadRequest, "FIELDS_MISSING", "Please fill in all the fields")
	case errors.Is(err, service.ErrWeakPassword):
		writeError(w, http.StatusUnprocessableEntity, "WEAK_PASSWORD", "Password must be at least 8 characters with upper, lower, digit and symbol")
	case errors.Is(err, service.ErrPasswordMismatch):
		writeError(w, http.StatusUnprocessableEntity, "PASSWORD_MISMATCH", "Passwords do not match")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "An account with that email already exists")
	case errors.Is(err, service.ErrEmailInUse):
		writeError(w, http.StatusConflict, "EMAIL_IN_USE", "That email is in use by another account")
	case errors.Is(err, service.ErrNoSuchAccount):
		writeError(w, http.StatusUnauthorized, "NO_SUCH_ACCOUNT", "No account with that email")
	case errors.Is(err, service.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "BAD_CREDENTIALS", "Wrong password")
	case errors.Is(err, service.ErrEmptyField):
		writeError(w, http.StatusUnprocessableEntity, "EMPTY_FIELD", err.Error())
	case errors.Is(err, service.ErrInvalidNumber):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_NUMBER", err.Error())
	case errors.Is(err, service.ErrNegativeValue):
		writeError(w, http.StatusUnprocessableEntity, "NEGATIVE_VALUE", err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Measurement not found")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
