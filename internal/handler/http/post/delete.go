package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/pathutil"
	"inkwell/internal/handler/http/respond"
	postUC "inkwell/internal/usecase/post"
)

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes a post.
// @Summary      Delete post
// @Description  Hard-deletes a post. Deleting an id that no longer exists answers 404.
// @Tags         posts
// @Security     CookieAuth
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200 {object} successResponse
// @Failure      401 {object} map[string]string "Admin session required"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "Storage failure"
// @Router       /api/blogs/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	isAdmin := auth.IsAdmin(r.Context())
	if unauthorizedFirst(w, isAdmin) {
		return
	}

	id, err := pathutil.PostID(r)
	if err != nil {
		writeError(w, postUC.ErrPostNotFound)
		return
	}

	removed, err := h.Svc.Delete(r.Context(), id, isAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	if !removed {
		writeError(w, postUC.ErrPostNotFound)
		return
	}
	respond.Success(w)
}
