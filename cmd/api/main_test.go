package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/observability/slo"
	"inkwell/internal/resilience/circuitbreaker"
	postUC "inkwell/internal/usecase/post"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "correct-horse-battery-staple"
	testSecret   = "test-secret-key-at-least-32-characters-long-for-testing"
)

type app struct {
	handler http.Handler
}

func newApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.JSONPath = filepath.Join(t.TempDir(), "blogs.json")
	cfg.Auth.AdminEmail = testEmail
	cfg.Auth.AdminPassword = testPassword
	cfg.Auth.JWTSecret = testSecret

	authSvc, err := newAuthService(cfg.Auth)
	require.NoError(t, err)

	store, err := openStorage(t.Context(), cfg.Storage)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	breaker := circuitbreaker.NewRepository(store.Repo, circuitbreaker.RepositoryConfig(cfg.Storage.Backend))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &app{handler: newHandler(logger, &cfg, deps{
		auth:    authSvc,
		posts:   postUC.NewService(breaker, postUC.Policy{}),
		breaker: breaker,
		store:   store,
		tracker: slo.NewTracker(),
	})}
}

func (a *app) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *app) login(t *testing.T) *http.Cookie {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth-token" {
			return c
		}
	}
	t.Fatal("login did not set the auth-token cookie")
	return nil
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type postBody struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

func TestApp_AnonymousSubmissionReviewedByAdmin(t *testing.T) {
	a := newApp(t)

	rr := a.do(t, http.MethodPost, "/api/auth/login", `{"email":"`+testEmail+`","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = a.do(t, http.MethodPost, "/api/blogs", `{"title":"Guest post","content":"Hello there","published":true}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[postBody](t, rr)
	assert.False(t, created.Published)
	assert.Equal(t, "Guest Writer", created.Author)

	rr = a.do(t, http.MethodGet, "/api/blogs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]postBody](t, rr))

	rr = a.do(t, http.MethodPost, "/api/blogs/"+created.ID+"/toggle", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	admin := a.login(t)
	assert.True(t, admin.HttpOnly)

	rr = a.do(t, http.MethodGet, "/api/auth/check", "", admin)
	assert.JSONEq(t, `{"authenticated":true}`, rr.Body.String())

	rr = a.do(t, http.MethodPost, "/api/blogs/"+created.ID+"/toggle", "", admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decode[postBody](t, rr).Published)

	rr = a.do(t, http.MethodGet, "/api/blogs", "")
	list := decode[[]postBody](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rr = a.do(t, http.MethodDelete, "/api/blogs/"+created.ID, "", admin)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	rr = a.do(t, http.MethodGet, "/api/blogs/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApp_ResponsesCarryRequestID(t *testing.T) {
	a := newApp(t)

	rr := a.do(t, http.MethodGet, "/api/blogs", "")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rr = httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	assert.Equal(t, "client-supplied-id", rr.Header().Get("X-Request-ID"))
}

func TestApp_OpsEndpoints(t *testing.T) {
	a := newApp(t)

	rr := a.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	health := decode[struct {
		Status string                    `json:"status"`
		Checks map[string]map[string]any `json:"checks"`
	}](t, rr)
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Checks, "storage")
	assert.Contains(t, health.Checks, "circuit_breaker")

	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/live", "").Code)

	rr = a.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")

	rr = a.do(t, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Inkwell Blog API")
}

func TestApp_RejectsOversizedCookies(t *testing.T) {
	a := newApp(t)

	big := &http.Cookie{Name: "junk", Value: strings.Repeat("a", 9<<10)}
	rr := a.do(t, http.MethodGet, "/api/blogs", "", big)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNewAuthService_RejectsWeakConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{name: "missing email", cfg: config.AuthConfig{AdminPassword: testPassword, JWTSecret: testSecret}},
		{name: "weak password", cfg: config.AuthConfig{AdminEmail: testEmail, AdminPassword: "password", JWTSecret: testSecret}},
		{name: "short secret", cfg: config.AuthConfig{AdminEmail: testEmail, AdminPassword: testPassword, JWTSecret: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAuthService(tt.cfg)
			assert.Error(t, err)
		})
	}
}
