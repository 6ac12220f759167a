package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/pathutil"
	"inkwell/internal/handler/http/respond"
	postUC "inkwell/internal/usecase/post"
)

type ToggleHandler struct{ Svc Service }

// ServeHTTP flips the published flag.
// @Summary      Toggle publish state
// @Description  Publishes a draft or unpublishes a published post.
// @Tags         posts
// @Security     CookieAuth
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200 {object} DTO
// @Failure      401 {object} map[string]string "Admin session required"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "Storage failure"
// @Router       /api/blogs/{id}/toggle [post]
func (h ToggleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	isAdmin := auth.IsAdmin(r.Context())
	if unauthorizedFirst(w, isAdmin) {
		return
	}

	id, err := pathutil.PostID(r)
	if err != nil {
		writeError(w, postUC.ErrPostNotFound)
		return
	}

	p, err := h.Svc.TogglePublish(r.Context(), id, isAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}
