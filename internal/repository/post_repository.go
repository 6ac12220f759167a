// Package repository defines the persistence contract for posts.
// Storage adapters under internal/infra/adapter/persistence implement it.
package repository

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/domain/entity"
)

// ErrStorage is the single opaque condition backends surface on connection,
// query or write failures. Adapters wrap the underlying cause with it.
var ErrStorage = errors.New("storage unavailable")

// StorageError wraps a backend failure so that errors.Is(err, ErrStorage) holds
// while the cause stays available for logging.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// PostFields are the writer-controlled fields of a new post.
// Server-assigned fields (id, timestamps) are never taken from here.
type PostFields struct {
	Title      string
	Excerpt    string
	Content    string
	CoverImage string
	Category   string
	Author     string
	Published  bool
}

// PostPatch is a partial update. Nil fields are left unchanged.
type PostPatch struct {
	Title      *string
	Excerpt    *string
	Content    *string
	CoverImage *string
	Category   *string
	Author     *string
	Published  *bool
}

// IsEmpty reports whether the patch carries no field at all.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Excerpt == nil && p.Content == nil &&
		p.CoverImage == nil && p.Category == nil && p.Author == nil && p.Published == nil
}

// Apply merges the patch into post in place.
func (p PostPatch) Apply(post *entity.Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.CoverImage != nil {
		post.CoverImage = *p.CoverImage
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
}

// PostRepository stores posts keyed by id. Every call is atomic with respect
// to concurrent calls on the same id. Implementations do not own the storage
// client they are built on; whoever opened it closes it.
type PostRepository interface {
	// List returns all posts, newest created first.
	List(ctx context.Context) ([]*entity.Post, error)
	// Get returns (nil, nil) when no post has the given id.
	Get(ctx context.Context, id string) (*entity.Post, error)
	// Insert assigns a fresh id, stamps createdAt = updatedAt = now and
	// persists the post before returning it.
	Insert(ctx context.Context, fields PostFields) (*entity.Post, error)
	// Update merges patch into the stored post and refreshes updatedAt.
	// Returns (nil, nil) when no post has the given id.
	Update(ctx context.Context, id string, patch PostPatch) (*entity.Post, error)
	// Remove hard-deletes the post and reports whether one was removed.
	Remove(ctx context.Context, id string) (bool, error)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
