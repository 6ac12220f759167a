// Package entity defines the core domain entities and validation logic for the application.
// It contains the Post entity, its timestamp rules, excerpt derivation and the
// domain-specific validation errors.
package entity

import (
	"math"
	"strings"
	"time"
)

// Defaults applied when a writer omits category or author.
// Anonymous submissions and admin writes use different defaults.
const (
	DefaultGuestCategory = "General"
	DefaultAdminCategory = "Technology"
	DefaultGuestAuthor   = "Guest Writer"
	DefaultAdminAuthor   = "Admin"
)

// TimestampPrecision is the resolution every backend can round-trip.
// BSON datetimes carry milliseconds, so all stamps are truncated to that.
const TimestampPrecision = time.Millisecond

// wordsPerMinute is the reading speed used for ReadingTimeMinutes.
const wordsPerMinute = 200

// Post represents a blog article. It is the only persisted entity.
type Post struct {
	ID         string
	Title      string
	Excerpt    string
	Content    string
	CoverImage string
	Category   string
	Author     string
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clone returns a copy of the post that shares no state with the receiver.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ReadingTimeMinutes estimates the reading time of the content, never less than one minute.
func (p *Post) ReadingTimeMinutes() int {
	words := len(strings.Fields(p.Content))
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

// Timestamp normalizes t to UTC at TimestampPrecision.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

// NextUpdatedAt returns the updatedAt stamp for a mutation happening at now.
// The result is always strictly after prev, even when the clock has not advanced
// past it at TimestampPrecision.
func NextUpdatedAt(prev, now time.Time) time.Time {
	next := Timestamp(now)
	if !next.After(prev) {
		next = prev.Add(TimestampPrecision)
	}
	return next
}
