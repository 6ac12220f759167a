package pathutil

import (
	"errors"
	"net/http"
	"strings"
)

// ErrInvalidID is returned when the request carries no usable post id.
var ErrInvalidID = errors.New("invalid id")

// maxIDLength bounds ids taken from the URL. Post ids are UUID strings.
const maxIDLength = 64

// PostID returns the {id} wildcard of a Go 1.22 route pattern.
// Ids are opaque strings; only blank or oversized values are rejected.
//
// Example:
//
//	mux.HandleFunc("GET /api/blogs/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    id, err := pathutil.PostID(r)
//	    ...
//	})
func PostID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" || len(id) > maxIDLength {
		return "", ErrInvalidID
	}
	return id, nil
}
