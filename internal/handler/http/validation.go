package http

import (
	"errors"
	"net/http"

	"inkwell/internal/handler/http/respond"
)

// InputLimits bounds the request parts read before a handler runs.
type InputLimits struct {
	MaxCookieBytes int
	MaxPathBytes   int
}

// DefaultInputLimits allows an 8KB Cookie header and a 2KB path.
func DefaultInputLimits() InputLimits {
	return InputLimits{MaxCookieBytes: 8 << 10, MaxPathBytes: 2 << 10}
}

var (
	errCookieTooLarge = errors.New("cookie header too large")
	errURITooLong     = errors.New("URI too long")
)

// InputValidation returns middleware that rejects oversized Cookie headers and paths
// before the session token is parsed or a route is matched. Body size is bounded
// separately by LimitRequestBody.
func InputValidation(limits InputLimits) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Session tokens are well under 1KB; the rest is headroom for other cookies.
			if limits.MaxCookieBytes > 0 && cookieBytes(r) > limits.MaxCookieBytes {
				respond.Error(w, http.StatusBadRequest, errCookieTooLarge)
				return
			}

			if limits.MaxPathBytes > 0 && len(r.URL.Path) > limits.MaxPathBytes {
				respond.Error(w, http.StatusRequestURITooLong, errURITooLong)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func cookieBytes(r *http.Request) int {
	n := 0
	for _, v := range r.Header.Values("Cookie") {
		n += len(v)
	}
	return n
}
