package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/pathutil"
	"inkwell/internal/handler/http/respond"
	postUC "inkwell/internal/usecase/post"
)

type GetHandler struct{ Svc Service }

// ServeHTTP fetches one post.
// @Summary      Get post
// @Description  Returns a single post by id. Whether drafts are visible to anonymous callers depends on POST_DRAFT_LOOKUP.
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200 {object} DTO
// @Failure      404 {object} map[string]string "Post not found"
// @Router       /api/blogs/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PostID(r)
	if err != nil {
		writeError(w, postUC.ErrPostNotFound)
		return
	}

	p, err := h.Svc.GetByID(r.Context(), id, auth.IsAdmin(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}
