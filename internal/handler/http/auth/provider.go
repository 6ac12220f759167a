package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	authservice "inkwell/internal/service/auth"
)

// AdminIdentity is the single configured admin. When PasswordHash is set it
// takes precedence over Password.
type AdminIdentity struct {
	Email        string
	Password     string
	PasswordHash string
}

// SingleAdminProvider authenticates exactly one configured admin identity.
type SingleAdminProvider struct {
	identity AdminIdentity
}

// NewSingleAdminProvider creates a provider for identity.
func NewSingleAdminProvider(identity AdminIdentity) *SingleAdminProvider {
	return &SingleAdminProvider{identity: identity}
}

// ValidateCredentials compares both fields without short-circuiting so the
// response time does not reveal which one mismatched.
func (p *SingleAdminProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return authservice.ErrInvalidCredentials
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(p.identity.Email)) == 1

	var passMatch bool
	if p.identity.PasswordHash != "" {
		passMatch = bcrypt.CompareHashAndPassword([]byte(p.identity.PasswordHash), []byte(creds.Password)) == nil
	} else {
		passMatch = subtle.ConstantTimeCompare([]byte(creds.Password), []byte(p.identity.Password)) == 1
	}

	if !emailMatch || !passMatch {
		return authservice.ErrInvalidCredentials
	}
	return nil
}

// IdentifyUser returns the admin role for the configured email.
func (p *SingleAdminProvider) IdentifyUser(_ context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("email must not be empty")
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(p.identity.Email)) == 1 {
		return authservice.RoleAdmin, nil
	}
	return "", errors.New("user not found")
}

// Name returns the provider name.
func (p *SingleAdminProvider) Name() string {
	return "single-admin"
}

var _ authservice.AuthProvider = (*SingleAdminProvider)(nil)
