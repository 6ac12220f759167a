package pathutil_test

import (
	"fmt"

	"inkwell/internal/handler/http/pathutil"
)

// ExampleNormalizePath demonstrates how post ids collapse to a single label.
func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/api/blogs/0b7e4f3a-2f7c-4d8e-9a51-3c1f2e5d6a7b"))
	fmt.Println(pathutil.NormalizePath("/api/blogs/9d2a1c44-7b0e-4a55-8f7e-51c3b9e0d2aa"))
	fmt.Println(pathutil.NormalizePath("/api/blogs/9d2a1c44-7b0e-4a55-8f7e-51c3b9e0d2aa/toggle"))

	// Output:
	// /api/blogs/:id
	// /api/blogs/:id
	// /api/blogs/:id/toggle
}

// ExampleNormalizePath_static demonstrates that static endpoints remain unchanged.
func ExampleNormalizePath_static() {
	fmt.Println(pathutil.NormalizePath("/api/blogs/stats"))
	fmt.Println(pathutil.NormalizePath("/health"))
	fmt.Println(pathutil.NormalizePath("/metrics"))

	// Output:
	// /api/blogs/stats
	// /health
	// /metrics
}
