package post

import (
	"context"
	"net/http"

	"inkwell/internal/domain/entity"
	postUC "inkwell/internal/usecase/post"
)

// Service is the post use case as seen by the handlers.
type Service interface {
	ListVisible(ctx context.Context, isAdmin bool) ([]*entity.Post, error)
	GetByID(ctx context.Context, id string, isAdmin bool) (*entity.Post, error)
	Create(ctx context.Context, in postUC.Input, isAdmin bool) (*entity.Post, error)
	Update(ctx context.Context, id string, in postUC.Input, isAdmin bool) (*entity.Post, error)
	Delete(ctx context.Context, id string, isAdmin bool) (bool, error)
	TogglePublish(ctx context.Context, id string, isAdmin bool) (*entity.Post, error)
	Stats(ctx context.Context, isAdmin bool) (postUC.Stats, error)
}

// Register registers all post-related HTTP handlers with the given mux.
// None of the routes reject anonymous callers up front: the admin flag set by
// auth.Identify travels to the service, which decides per operation.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /api/blogs", ListHandler{svc})
	mux.Handle("GET /api/blogs/stats", StatsHandler{svc})
	mux.Handle("GET /api/blogs/{id}", GetHandler{svc})

	mux.Handle("POST /api/blogs", CreateHandler{svc})
	mux.Handle("PUT /api/blogs/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /api/blogs/{id}", DeleteHandler{svc})
	mux.Handle("POST /api/blogs/{id}/toggle", ToggleHandler{svc})
}
