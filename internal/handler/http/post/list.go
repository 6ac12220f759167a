package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/respond"
)

type ListHandler struct{ Svc Service }

// ServeHTTP lists posts.
// @Summary      List posts
// @Description  Returns published posts newest first. An admin passing all=true also sees drafts.
// @Tags         posts
// @Produce      json
// @Param        all query bool false "Include drafts (admin only)"
// @Success      200 {array} DTO
// @Router       /api/blogs [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"
	posts, err := h.Svc.ListVisible(r.Context(), auth.IsAdmin(r.Context()) && all)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(posts))
}
