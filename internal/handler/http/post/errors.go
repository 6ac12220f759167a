package post

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/internal/domain/entity"
	"inkwell/internal/handler/http/respond"
	postUC "inkwell/internal/usecase/post"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

// writeError maps service errors to status codes. Anything unrecognized is a 500
// whose details are logged and masked.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrValidationFailed):
		code = http.StatusBadRequest
	case errors.Is(err, postUC.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, postUC.ErrPostNotFound):
		code = http.StatusNotFound
	}
	respond.SafeError(w, code, err)
}

// decode reads a WriteRequest. A body over the configured limit is a 413.
func decode(w http.ResponseWriter, r *http.Request) (postUC.Input, bool) {
	var req WriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
			return postUC.Input{}, false
		}
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return postUC.Input{}, false
	}
	return postUC.Input{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Author:     req.Author,
		Published:  req.Published,
	}, true
}

// unauthorizedFirst answers 401 for anonymous callers of admin routes so a
// malformed id or body never reveals more than the missing session would.
func unauthorizedFirst(w http.ResponseWriter, isAdmin bool) bool {
	if isAdmin {
		return false
	}
	writeError(w, postUC.ErrUnauthorized)
	return true
}
