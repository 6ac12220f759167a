// Package post provides HTTP handlers for the blog post endpoints under /api/blogs.
// Handlers resolve the caller's admin flag from the request context and leave every
// visibility and authorization decision to the post service.
package post

import (
	"time"

	"inkwell/internal/domain/entity"
)

// DTO represents the JSON structure for post data transfer.
type DTO struct {
	ID                 string    `json:"id" example:"0b7e4f3a-2f7c-4d8e-9a51-3c1f2e5d6a7b"`
	Title              string    `json:"title" example:"Shipping a blog in Go"`
	Excerpt            string    `json:"excerpt" example:"Notes from building a small publishing API..."`
	Content            string    `json:"content" example:"<p>Notes from building a small publishing API.</p>"`
	CoverImage         string    `json:"coverImage" example:"https://images.example.com/cover.jpg"`
	Category           string    `json:"category" example:"Technology"`
	Author             string    `json:"author" example:"Admin"`
	Published          bool      `json:"published" example:"true"`
	ReadingTimeMinutes int       `json:"readingTimeMinutes" example:"3"`
	CreatedAt          time.Time `json:"createdAt" example:"2026-01-02T15:04:05.000Z"`
	UpdatedAt          time.Time `json:"updatedAt" example:"2026-01-02T15:04:05.000Z"`
}

// WriteRequest is the body of create and update requests.
// Omitted (or null) fields are left to defaults on create and unchanged on update.
type WriteRequest struct {
	Title      *string `json:"title" example:"Shipping a blog in Go"`
	Excerpt    *string `json:"excerpt" example:""`
	Content    *string `json:"content" example:"<p>Notes from building a small publishing API.</p>"`
	CoverImage *string `json:"coverImage" example:"https://images.example.com/cover.jpg"`
	Category   *string `json:"category" example:"Technology"`
	Author     *string `json:"author" example:"Admin"`
	Published  *bool   `json:"published" example:"false"`
}

type successResponse struct {
	Success bool `json:"success" example:"true"`
}

func toDTO(p *entity.Post) DTO {
	return DTO{
		ID:                 p.ID,
		Title:              p.Title,
		Excerpt:            p.Excerpt,
		Content:            p.Content,
		CoverImage:         p.CoverImage,
		Category:           p.Category,
		Author:             p.Author,
		Published:          p.Published,
		ReadingTimeMinutes: p.ReadingTimeMinutes(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toDTOs(posts []*entity.Post) []DTO {
	out := make([]DTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toDTO(p))
	}
	return out
}
