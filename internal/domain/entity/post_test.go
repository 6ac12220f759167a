package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_Clone(t *testing.T) {
	orig := &Post{ID: "a", Title: "Hello", Published: true}
	c := orig.Clone()
	require.NotNil(t, c)
	assert.Equal(t, orig, c)

	c.Title = "changed"
	assert.Equal(t, "Hello", orig.Title)

	var nilPost *Post
	assert.Nil(t, nilPost.Clone())
}

func TestPost_ReadingTimeMinutes(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{name: "empty content", words: 0, want: 1},
		{name: "short content", words: 10, want: 1},
		{name: "exactly one minute", words: 200, want: 1},
		{name: "just over one minute", words: 201, want: 2},
		{name: "long content", words: 1000, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Content: strings.TrimSpace(strings.Repeat("word ", tt.words))}
			assert.Equal(t, tt.want, p.ReadingTimeMinutes())
		})
	}
}

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	in := time.Date(2026, 1, 2, 12, 0, 0, 123456789, loc)

	got := Timestamp(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 123000000, got.Nanosecond())
	assert.True(t, got.Equal(in.Truncate(time.Millisecond)))
}

func TestNextUpdatedAt(t *testing.T) {
	prev := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	t.Run("clock advanced", func(t *testing.T) {
		now := prev.Add(time.Second)
		assert.Equal(t, now, NextUpdatedAt(prev, now))
	})

	t.Run("same instant", func(t *testing.T) {
		got := NextUpdatedAt(prev, prev)
		assert.True(t, got.After(prev))
		assert.Equal(t, prev.Add(TimestampPrecision), got)
	})

	t.Run("clock went backwards", func(t *testing.T) {
		got := NextUpdatedAt(prev, prev.Add(-time.Hour))
		assert.True(t, got.After(prev))
	})

	t.Run("sub-precision advance", func(t *testing.T) {
		got := NextUpdatedAt(prev, prev.Add(10*time.Microsecond))
		assert.True(t, got.After(prev))
	})
}

func TestDeriveExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short plain text is kept",
			content: "World",
			want:    "World",
		},
		{
			name:    "whitespace is collapsed",
			content: "  Hello \n\n   there\tfriend ",
			want:    "Hello there friend",
		},
		{
			name:    "markup is stripped",
			content: "<p>Hello <strong>bold</strong> world</p>",
			want:    "Hello bold world",
		},
		{
			name:    "entities are decoded",
			content: "fish &amp; chips",
			want:    "fish & chips",
		},
		{
			name:    "long text is truncated",
			content: strings.Repeat("a", ExcerptLength+10),
			want:    strings.Repeat("a", ExcerptLength) + "...",
		},
		{
			name:    "exact length is not suffixed",
			content: strings.Repeat("b", ExcerptLength),
			want:    strings.Repeat("b", ExcerptLength),
		},
		{
			name:    "multibyte text is cut on rune boundaries",
			content: strings.Repeat("あ", ExcerptLength+1),
			want:    strings.Repeat("あ", ExcerptLength) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveExcerpt(tt.content))
		})
	}
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("title", "Hi"))

	for _, v := range []string{"", " ", "\n\t "} {
		err := ValidateRequired("title", v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "title")
	}
}

func TestValidateCoverImage(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty is allowed", url: "", wantErr: false},
		{name: "https URL", url: "https://images.example.com/cover.png", wantErr: false},
		{name: "http URL with port", url: "http://example.com:8080/a.jpg", wantErr: false},
		{name: "relative path", url: "/img/a.png", wantErr: true},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: true},
		{name: "missing host", url: "https://", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoverImage(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
