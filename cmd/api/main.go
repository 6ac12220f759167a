package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"inkwell/internal/config"
	hauth "inkwell/internal/handler/http/auth"
	"inkwell/internal/infra/jobs"
	"inkwell/internal/observability/logging"
	"inkwell/internal/observability/slo"
	"inkwell/internal/observability/tracing"
	"inkwell/internal/resilience/circuitbreaker"
	authservice "inkwell/internal/service/auth"
	postUC "inkwell/internal/usecase/post"

	_ "inkwell/docs" // swagger docs
)

// @title           Inkwell Blog API
// @version         1.0
// @description     Blog publishing API: visitors read published posts, anonymous
// @description     visitors submit drafts for review and a single admin manages posts.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth-token
// @description Session token set by POST /api/auth/login.

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires the application from configuration and serves until SIGINT or
// SIGTERM, then shuts down the server, the job scheduler and storage in order.
func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	jobMetrics := jobs.NewMetrics()
	jobMetrics.RecordLoadTimestamp()
	for _, fb := range cfg.Fallbacks {
		logger.Warn("configuration fallback applied",
			slog.String("field", fb.Field),
			slog.String("warning", fb.Warning))
		jobMetrics.RecordFallback(fb.Field)
	}

	authSvc, err := newAuthService(cfg.Auth)
	if err != nil {
		return err
	}

	lookup, err := postUC.ParseDraftLookup(cfg.Policy.DraftLookup)
	if err != nil {
		return err
	}

	tp := tracing.Init("inkwell", cfg.Version, cfg.Tracing.SampleRatio)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	logger.Info("storage ready", slog.String("backend", cfg.Storage.Backend))

	breaker := circuitbreaker.NewRepository(store.Repo,
		circuitbreaker.RepositoryConfig(cfg.Storage.Backend), observeBreaker)
	svc := postUC.NewService(breaker, postUC.Policy{DraftLookup: lookup})
	tracker := slo.NewTracker()

	scheduler := jobs.NewScheduler(logger, jobMetrics)
	if err := scheduleJobs(scheduler, cfg.Jobs, svc, tracker, store); err != nil {
		return err
	}
	scheduler.Start()

	handler := newHandler(logger, cfg, deps{
		auth:    authSvc,
		posts:   svc,
		breaker: breaker,
		store:   store,
		tracker: tracker,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		if err := scheduler.Stop(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// newAuthService validates the admin identity and session secret and builds
// the credential verifier. Weak or missing credentials stop startup.
func newAuthService(cfg config.AuthConfig) (*authservice.AuthService, error) {
	identity := hauth.AdminIdentity{
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}
	if err := hauth.ValidateAdminIdentity(identity); err != nil {
		return nil, err
	}
	if err := authservice.ValidateSecret(cfg.JWTSecret); err != nil {
		return nil, err
	}

	sessions, err := authservice.NewSessionManager(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	return authservice.NewAuthService(hauth.NewSingleAdminProvider(identity), sessions), nil
}
