// Package auth issues and verifies admin session tokens.
// It is framework-agnostic: HTTP handlers and tests drive it the same way.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// RoleAdmin is the only role a session can carry.
const RoleAdmin = "admin"

// ErrInvalidCredentials is returned for any login mismatch. It never says
// which of email or password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents authentication credentials.
type Credentials struct {
	Email    string
	Password string
}

// AuthProvider looks up identities. Implementations must return
// ErrInvalidCredentials (possibly wrapped) on mismatch.
type AuthProvider interface {
	// ValidateCredentials validates user credentials.
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role for a validated email.
	IdentifyUser(ctx context.Context, email string) (string, error)

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic.
type AuthService struct {
	provider AuthProvider
	sessions *SessionManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider, sessions *SessionManager) *AuthService {
	return &AuthService{provider: provider, sessions: sessions}
}

// Issue validates creds and returns a signed session token.
func (s *AuthService) Issue(ctx context.Context, creds Credentials) (Session, error) {
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("validate credentials: %w", err)
	}

	role, err := s.provider.IdentifyUser(ctx, creds.Email)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if role != RoleAdmin {
		slog.Warn("identity without admin role refused", slog.String("provider", s.provider.Name()))
		return Session{}, ErrInvalidCredentials
	}

	return s.sessions.Issue(creds.Email, role)
}

// Verify reports whether token is a live admin session. It never fails loudly.
func (s *AuthService) Verify(token string) bool {
	return s.sessions.Verify(token)
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
