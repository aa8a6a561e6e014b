// Package main is the entrypoint for the fitlog API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/fitlog/fitlog/internal/activity"
	"github.com/fitlog/fitlog/internal/cache"
	"github.com/fitlog/fitlog/internal/config"
	"github.com/fitlog/fitlog/internal/handler"
	"github.com/fitlog/fitlog/internal/metrics"
	"github.com/fitlog/fitlog/internal/middleware"
	"github.com/fitlog/fitlog/internal/repository"
	"github.com/fitlog/fitlog/internal/server"
	"github.com/fitlog/fitlog/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	if err := repo.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// Initialize cache and session store
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize activity feed pipeline
	metricsRecorder := metrics.NewInMemory()
	publisher := activity.NewPublisher(cacheClient.Client(), logger, metricsRecorder)
	worker := activity.NewWorker(cacheClient.Client(), repo, logger, uuid.New().String(), metricsRecorder)

	workerCtx, workerCancel := context.WithCancel(ctx)
	go func() {
		if err := worker.Run(workerCtx); err != nil {
			logger.Error("activity worker stopped", "error", err)
		}
	}()

	// Initialize services
	credentialService := service.NewCredentialService(
		repo,
		cacheClient,
		publisher,
		[]byte(cfg.SessionSecret),
		cfg.SessionTTL,
		cfg.RememberTTL,
		metricsRecorder,
	)
	measurementService := service.NewMeasurementService(repo, publisher, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(credentialService, logger, cfg.SecureCookies)
	accountHandler := handler.NewAccountHandler(credentialService, logger, cfg.SecureCookies)
	measurementHandler := handler.NewMeasurementHandler(measurementService, logger)
	activityHandler := handler.NewActivityHandler(repo, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:         h,
		health:       healthHandler,
		auth:         authHandler,
		account:      accountHandler,
		measurements: measurementHandler,
		activity:     activityHandler,
		credentials:  credentialService,
		cache:        cacheClient,
		cfg:          cfg,
		logger:       logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("activity_worker", func(ctx context.Context) error {
		workerCancel()
		return worker.Shutdown(ctx)
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base         *handler.Handler
	health       *handler.HealthHandler
	auth         *handler.AuthHandler
	account      *handler.AccountHandler
	measurements *handler.MeasurementHandler
	activity     *handler.ActivityHandler
	credentials  *service.CredentialService
	cache        *cache.Cache
	cfg          *config.Config
	logger       *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(chimiddleware.RequestSize(deps.cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Root)

	sessionCfg := middleware.SessionConfig{
		Logger:        deps.logger,
		Credentials:   deps.credentials,
		SecureCookies: deps.cfg.SecureCookies,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:        deps.logger,
		Limiter:       deps.cache,
		Enabled:       deps.cfg.RateLimitLoginEnabled,
		RatePerMinute: deps.cfg.RateLimitLoginRPM,
		Burst:         deps.cfg.RateLimitLoginBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints, rate limited by client IP
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/register", deps.auth.Register)
			r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/login", deps.auth.Login)
			r.Post("/logout", deps.auth.Logout)
		})

		// Everything below requires a session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(sessionCfg))

			r.Route("/account", func(r chi.Router) {
				r.Get("/", deps.account.Get)
				r.Patch("/email", deps.account.ChangeEmail)
				r.Patch("/password", deps.account.ChangePassword)
				r.Delete("/", deps.account.Delete)
			})

			r.Route("/measurements", func(r chi.Router) {
				r.Get("/", deps.measurements.List)
				r.Post("/", deps.measurements.Create)
				r.Get("/series", deps.measurements.Series)
				r.Put("/{id}", deps.measurements.Update)
				r.Delete("/{id}", deps.measurements.Delete)
			})

			r.Get("/activity", deps.activity.List)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
