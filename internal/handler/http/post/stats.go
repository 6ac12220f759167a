package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/respond"
)

type StatsHandler struct{ Svc Service }

// ServeHTTP returns dashboard counts.
// @Summary      Post statistics
// @Description  Counts all stored posts by publication state.
// @Tags         posts
// @Security     CookieAuth
// @Produce      json
// @Success      200 {object} post.Stats
// @Failure      401 {object} map[string]string "Admin session required"
// @Router       /api/blogs/stats [get]
func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context(), auth.IsAdmin(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}
