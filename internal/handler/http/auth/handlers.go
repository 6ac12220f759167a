package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/handler/http/requestid"
	"inkwell/internal/handler/http/respond"
	authservice "inkwell/internal/service/auth"
)

// DefaultCookieName is the session cookie set on login.
const DefaultCookieName = "auth-token"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// DefaultCookieConfig matches the session lifetime.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{Name: DefaultCookieName, MaxAge: authservice.SessionTTL}
}

func (c CookieConfig) session(value string) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) cleared() *http.Cookie {
	ck := c.session("")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	return ck
}

// Issuer is the login side of the auth service.
type Issuer interface {
	Issue(ctx context.Context, creds authservice.Credentials) (authservice.Session, error)
}

type loginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"your_password"`
}

type successResponse struct {
	Success bool `json:"success" example:"true"`
}

type checkResponse struct {
	Authenticated bool `json:"authenticated" example:"false"`
}

// LoginHandler authenticates the admin and sets the session cookie.
//
// @Summary      Log in
// @Description  Validates admin credentials and sets an HttpOnly auth-token cookie valid for 24 hours
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} successResponse
// @Failure      400 {object} map[string]string "Malformed request"
// @Failure      401 {object} map[string]string "Invalid credentials"
// @Failure      500 {object} map[string]string "Token generation failed"
// @Router       /api/auth/login [post]
func LoginHandler(svc Issuer, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed", slog.String("reason", "invalid_request"))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		session, err := svc.Issue(r.Context(), authservice.Credentials{Email: req.Email, Password: req.Password})
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusUnauthorized, authservice.ErrInvalidCredentials)
			return
		}
		if err != nil {
			logger.Error("token generation failed", slog.Any("error", err))
			RecordAuthRequest(authservice.RoleAdmin, "failure")
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		logger.Info("authentication successful",
			slog.String("role", authservice.RoleAdmin),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(authservice.RoleAdmin, "success")
		RecordAuthDuration(authservice.RoleAdmin, time.Since(start).Seconds())

		http.SetCookie(w, cookie.session(session.Token))
		respond.JSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// LogoutHandler clears the session cookie. The token itself stays valid
// until it expires.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200 {object} successResponse
// @Router       /api/auth/logout [post]
func LogoutHandler(cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, cookie.cleared())
		respond.JSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// CheckHandler reports whether the caller holds a valid admin session.
// It relies on Identify having run.
//
// @Summary      Check session
// @Tags         auth
// @Produce      json
// @Success      200 {object} checkResponse
// @Router       /api/auth/check [get]
func CheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, checkResponse{Authenticated: IsAdmin(r.Context())})
	}
}

// Register mounts the auth routes on mux.
func Register(mux *http.ServeMux, svc Issuer, cookie CookieConfig) {
	mux.Handle("GET /api/auth/check", CheckHandler())
	mux.Handle("POST /api/auth/login", LoginHandler(svc, cookie))
	mux.Handle("POST /api/auth/logout", LogoutHandler(cookie))
}
