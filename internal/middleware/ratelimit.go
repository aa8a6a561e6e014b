package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/fitlog/fitlog/internal/cache"
)

// LoginLimiter checks the per-IP rate limit for credential endpoints.
// Implemented by *cache.Cache.
type LoginLimiter interface {
	CheckLoginRateLimit(ctx context.Context, ip string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for the login rate limit middleware.
type RateLimitConfig struct {
	Logger        *slog.Logger
	Limiter       LoginLimiter
	Enabled       bool
	RatePerMinute int
	Burst         int
}

// RateLimitLogin returns a middleware that rate limits credential endpoints
// by client IP to slow down online password guessing.
func RateLimitLogin(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			result, err := cfg.Limiter.CheckLoginRateLimit(r.Context(), ip, cfg.RatePerMinute, cfg.Burst)
			if err != nil || result.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			cfg.Logger.Warn("login rate limit exceeded",
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			if result.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many attempts","code":"RATE_LIMITED"}`))
		})
	}
}

// clientIP extracts the client IP, ignoring the port.
// chi's RealIP middleware has already resolved proxy headers upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
