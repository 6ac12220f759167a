package main

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"inkwell/internal/config"
	hhttp "inkwell/internal/handler/http"
	hauth "inkwell/internal/handler/http/auth"
	hpost "inkwell/internal/handler/http/post"
	"inkwell/internal/handler/http/requestid"
	"inkwell/internal/observability/slo"
	"inkwell/internal/observability/tracing"
	authservice "inkwell/internal/service/auth"
)

// deps are the components the HTTP surface is built from.
type deps struct {
	auth    *authservice.AuthService
	posts   hpost.Service
	breaker hhttp.BreakerState
	store   *storage
	tracker *slo.Tracker
}

// newHandler registers every route and wraps the mux with the middleware chain.
//
// Middleware order (outermost first): Request ID → Recovery → Tracing → Logging →
// Metrics → Input validation → Body limit → Identify caller → Timeout.
func newHandler(logger *slog.Logger, cfg *config.Config, d deps) http.Handler {
	mux := http.NewServeMux()

	// Probes ping the raw repository so an open breaker does not hide recovery.
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:   d.store.Repo,
		Backend: cfg.Storage.Backend,
		Version: cfg.Version,
		DB:      d.store.DB,
		Breaker: d.breaker,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: d.store.Repo})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	cookie := hauth.DefaultCookieConfig()
	cookie.Secure = cfg.Auth.CookieSecure
	hauth.Register(mux, d.auth, cookie)
	hpost.Register(mux, d.posts)

	return hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Recover(logger),
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Metrics(d.tracker),
		hhttp.InputValidation(hhttp.DefaultInputLimits()),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hauth.Identify(d.auth, cookie.Name),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}
