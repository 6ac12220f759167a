package post

import (
	"fmt"
	"strings"

	"inkwell/internal/domain/entity"
	"inkwell/internal/repository"
)

// DraftLookup controls whether unpublished posts are reachable by id.
type DraftLookup string

const (
	// DraftLookupOpen lets any caller fetch any post by id, drafts included.
	DraftLookupOpen DraftLookup = "open"
	// DraftLookupRestricted reports drafts as not found to non-admin callers.
	DraftLookupRestricted DraftLookup = "restricted"
)

// ParseDraftLookup parses a configuration value. An empty value selects DraftLookupOpen.
func ParseDraftLookup(s string) (DraftLookup, error) {
	switch DraftLookup(strings.ToLower(strings.TrimSpace(s))) {
	case "", DraftLookupOpen:
		return DraftLookupOpen, nil
	case DraftLookupRestricted:
		return DraftLookupRestricted, nil
	default:
		return "", fmt.Errorf("invalid draft lookup mode %q: must be %q or %q", s, DraftLookupOpen, DraftLookupRestricted)
	}
}

// Input is a writer payload. Nil fields were not supplied by the caller.
type Input struct {
	Title      *string
	Excerpt    *string
	Content    *string
	CoverImage *string
	Category   *string
	Author     *string
	Published  *bool
}

// Policy is the visibility and authorization model. All methods are pure.
type Policy struct {
	DraftLookup DraftLookup
}

// FilterForCaller returns every post for admins and only published posts otherwise.
// Order is preserved.
func (p Policy) FilterForCaller(posts []*entity.Post, isAdmin bool) []*entity.Post {
	if isAdmin {
		return posts
	}
	visible := make([]*entity.Post, 0, len(posts))
	for _, post := range posts {
		if post.Published {
			visible = append(visible, post)
		}
	}
	return visible
}

// CanReadByID reports whether the caller may see post through a direct lookup.
func (p Policy) CanReadByID(post *entity.Post, isAdmin bool) bool {
	if post == nil {
		return false
	}
	if isAdmin || post.Published {
		return true
	}
	return p.DraftLookup != DraftLookupRestricted
}

// AuthorizeMutation gates update, delete and toggle. Create is open to everyone.
func (p Policy) AuthorizeMutation(isAdmin bool) error {
	if !isAdmin {
		return ErrUnauthorized
	}
	return nil
}

// SanitizeWrite forces non-admin payloads into the draft state regardless of
// what they asked for. Admin payloads pass through unchanged.
func (p Policy) SanitizeWrite(in Input, isAdmin bool) Input {
	if !isAdmin {
		draft := false
		in.Published = &draft
	}
	return in
}

// CreateFields turns a sanitized create payload into repository fields,
// filling entry-point defaults for anything the writer left out.
func (p Policy) CreateFields(in Input, isAdmin bool) repository.PostFields {
	in = p.SanitizeWrite(in, isAdmin)

	fields := repository.PostFields{
		Title:      deref(in.Title),
		Excerpt:    deref(in.Excerpt),
		Content:    deref(in.Content),
		CoverImage: deref(in.CoverImage),
		Category:   deref(in.Category),
		Author:     deref(in.Author),
		Published:  isAdmin,
	}
	if in.Published != nil {
		fields.Published = *in.Published
	}

	if strings.TrimSpace(fields.Category) == "" {
		fields.Category = entity.DefaultGuestCategory
		if isAdmin {
			fields.Category = entity.DefaultAdminCategory
		}
	}
	if strings.TrimSpace(fields.Author) == "" {
		fields.Author = entity.DefaultGuestAuthor
		if isAdmin {
			fields.Author = entity.DefaultAdminAuthor
		}
	}
	if strings.TrimSpace(fields.Excerpt) == "" {
		fields.Excerpt = entity.DeriveExcerpt(fields.Content)
	}
	return fields
}

// patchFrom converts a sanitized update payload into a repository patch.
func patchFrom(in Input) repository.PostPatch {
	return repository.PostPatch{
		Title:      in.Title,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Category:   in.Category,
		Author:     in.Author,
		Published:  in.Published,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
