package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "post by uuid",
			path:     "/api/blogs/0b7e4f3a-2f7c-4d8e-9a51-3c1f2e5d6a7b",
			expected: "/api/blogs/:id",
		},
		{
			name:     "post by opaque id",
			path:     "/api/blogs/abc",
			expected: "/api/blogs/:id",
		},
		{
			name:     "post with trailing slash",
			path:     "/api/blogs/abc/",
			expected: "/api/blogs/:id",
		},
		{
			name:     "post with query params",
			path:     "/api/blogs/abc?x=1",
			expected: "/api/blogs/:id",
		},
		{
			name:     "toggle",
			path:     "/api/blogs/abc/toggle",
			expected: "/api/blogs/:id/toggle",
		},
		{
			name:     "stats is static",
			path:     "/api/blogs/stats",
			expected: "/api/blogs/stats",
		},
		{
			name:     "list",
			path:     "/api/blogs",
			expected: "/api/blogs",
		},
		{
			name:     "list with all flag",
			path:     "/api/blogs?all=true",
			expected: "/api/blogs",
		},
		{
			name:     "auth check",
			path:     "/api/auth/check",
			expected: "/api/auth/check",
		},
		{
			name:     "health",
			path:     "/health",
			expected: "/health",
		},
		{
			name:     "root",
			path:     "/",
			expected: "/",
		},
		{
			name:     "unknown nested path",
			path:     "/api/blogs/abc/comments/1",
			expected: "/api/blogs/abc/comments/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	if got := GetExpectedCardinality(); got < len(pathPatterns) {
		t.Errorf("GetExpectedCardinality() = %d, want at least %d", got, len(pathPatterns))
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	for b.Loop() {
		_ = NormalizePath("/api/blogs/0b7e4f3a-2f7c-4d8e-9a51-3c1f2e5d6a7b")
	}
}
