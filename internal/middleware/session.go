package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fitlog/fitlog/internal/auth"
	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/service"
)

// SessionResolver resolves session and remember-me tokens to principals.
// Implemented by *service.CredentialService.
type SessionResolver interface {
	CurrentPrincipal(ctx context.Context, token string) (*model.Principal, error)
	ResumeSession(ctx context.Context, rememberToken string) (*service.Session, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger        *slog.Logger
	Credentials   SessionResolver
	SecureCookies bool
}

// Session returns a middleware that authenticates requests via the session
// cookie. When the server-side session has expired but a valid remember-me
// cookie is present, a fresh session is established transparently. Requests
// without a valid session get 401.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(auth.SessionCookie); err == nil && c.Value != "" {
				principal, err := cfg.Credentials.CurrentPrincipal(r.Context(), c.Value)
				if err == nil {
					ctx := auth.ContextWithPrincipal(r.Context(), principal)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// No live session; try the remember-me cookie.
			if c, err := r.Cookie(auth.RememberCookie); err == nil && c.Value != "" {
				session, err := cfg.Credentials.ResumeSession(r.Context(), c.Value)
				if err == nil {
					auth.SetSessionCookie(w, session.Token, session.TTL, cfg.SecureCookies)

					cfg.Logger.Info("session resumed from remember-me token",
						slog.Int64("user_id", session.Principal.UserID),
						slog.String("request_id", GetRequestID(r.Context())),
					)

					ctx := auth.ContextWithPrincipal(r.Context(), &session.Principal)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			cfg.Logger.Warn("authentication failed",
				slog.String("reason", "no_session"),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)
			writeAuthError(w)
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required","code":"UNAUTHORIZED"}`))
}
