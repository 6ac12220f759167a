// Package post implements the post lifecycle: who may see which posts, who may
// write them, and how anonymous submissions and admin edits are turned into
// repository calls.
package post

import "errors"

// Sentinel errors for post use case operations.
var (
	// ErrUnauthorized indicates that a mutation requiring an admin session was
	// attempted without one. It is reported before any existence check.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPostNotFound indicates that no visible post has the requested id.
	ErrPostNotFound = errors.New("post not found")
)
