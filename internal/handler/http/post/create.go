package post

import (
	"net/http"

	"inkwell/internal/handler/http/auth"
	"inkwell/internal/handler/http/respond"
)

type CreateHandler struct{ Svc Service }

// ServeHTTP creates a post.
// @Summary      Create post
// @Description  Creates a post. Anyone may submit; anonymous submissions are stored as drafts with guest defaults.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        post body WriteRequest true "Post fields (title and content required)"
// @Success      201 {object} DTO
// @Failure      400 {object} map[string]string "Validation error"
// @Failure      413 {object} map[string]string "Body too large"
// @Failure      500 {object} map[string]string "Storage failure"
// @Router       /api/blogs [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, ok := decode(w, r)
	if !ok {
		return
	}

	p, err := h.Svc.Create(r.Context(), in, auth.IsAdmin(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(p))
}
