package repository

import (
	"time"

	"github.com/google/uuid"
)

// Settings carries the id generator and clock shared by all adapters.
type Settings struct {
	Now   func() time.Time
	NewID func() string
}

// Option customizes Settings.
type Option func(*Settings)

// WithClock overrides the clock used for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Settings) { s.Now = now }
}

// WithIDGenerator overrides post id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Settings) { s.NewID = newID }
}

// NewSettings applies opts over the defaults: wall clock and UUID v4 ids.
func NewSettings(opts ...Option) Settings {
	s := Settings{Now: time.Now, NewID: uuid.NewString}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
