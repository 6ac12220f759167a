package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/pathutil"
	"inkwell/internal/handler/http/respond"
	postUC "inkwell/internal/usecase/post"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP updates a post.
// @Summary      Update post
// @Description  Merges the supplied fields into an existing post. Omitted fields are unchanged.
// @Tags         posts
// @Security     CookieAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        post body WriteRequest true "Fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Validation error"
// @Failure      401 {object} map[string]string "Admin session required"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "Storage failure"
// @Router       /api/blogs/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	isAdmin := auth.IsAdmin(r.Context())
	if unauthorizedFirst(w, isAdmin) {
		return
	}

	id, err := pathutil.PostID(r)
	if err != nil {
		writeError(w, postUC.ErrPostNotFound)
		return
	}
	in, ok := decode(w, r)
	if !ok {
		return
	}

	p, err := h.Svc.Update(r.Context(), id, in, isAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}
