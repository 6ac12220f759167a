package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// staticPaths are fixed routes that would otherwise match an :id pattern.
var staticPaths = map[string]struct{}{
	"/api/blogs/stats": {},
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/blogs/[^/]+/toggle$`), Template: "/api/blogs/:id/toggle"},
	{Pattern: regexp.MustCompile(`^/api/blogs/[^/]+$`), Template: "/api/blogs/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths carrying a post id (e.g., /api/blogs/6f1c...) to template format
// (e.g., /api/blogs/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/api/blogs/0b7e4f3a-2f7c-4d8e-9a51-3c1f2e5d6a7b")        // "/api/blogs/:id"
//	NormalizePath("/api/blogs/0b7e4f3a-2f7c-4d8e-9a51-3c1f2e5d6a7b/toggle") // "/api/blogs/:id/toggle"
//	NormalizePath("/api/blogs/stats")                                      // "/api/blogs/stats" (unchanged)
//	NormalizePath("/api/blogs")                                            // "/api/blogs" (unchanged)
//	NormalizePath("/health")                                               // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/blogs/abc?x=1")   // "/api/blogs/:id"
//	NormalizePath("/api/blogs/abc/")      // "/api/blogs/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization. This is useful for capacity planning and monitoring.
func GetExpectedCardinality() int {
	// health, ready, live, metrics, swagger, three auth routes, list and stats
	const staticCount = 10
	return len(pathPatterns) + staticCount
}
