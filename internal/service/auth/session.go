package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionTTL is how long an issued token stays valid.
	SessionTTL = 24 * time.Hour

	minSecretLength = 32
)

var weakSecrets = []string{"secret", "password", "test", "admin", "default", "changeme", "jwt-secret"}

// ValidateSecret enforces at least 256 bits and rejects well-known values.
func ValidateSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (256 bits)", minSecretLength)
	}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			return errors.New("JWT_SECRET must not be a common weak value")
		}
	}
	return nil
}

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session is an issued token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionManager signs and verifies HS256 session tokens. Tokens are
// stateless and cannot be revoked before they expire.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionOption customizes a SessionManager.
type SessionOption func(*SessionManager)

// WithClock overrides the clock used for iat/exp.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

// WithTTL overrides SessionTTL.
func WithTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) { m.ttl = ttl }
}

// NewSessionManager validates secret and returns a manager bound to it.
func NewSessionManager(secret string, opts ...SessionOption) (*SessionManager, error) {
	if err := ValidateSecret(secret); err != nil {
		return nil, err
	}
	m := &SessionManager{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a token for email with the given role.
func (m *SessionManager) Issue(email, role string) (Session, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, ExpiresAt: exp}, nil
}

// Parse checks signature, algorithm and expiry and returns the claims.
func (m *SessionManager) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Verify is true iff the token parses and carries the admin role.
func (m *SessionManager) Verify(tokenString string) bool {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Role == RoleAdmin
}
