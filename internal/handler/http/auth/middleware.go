package auth

import (
	"context"
	"net/http"
	"time"
)

type ctxKey struct{}

// Verifier checks a session token.
type Verifier interface {
	Verify(token string) bool
}

// Identify resolves whether the caller is an admin from the session cookie
// and stores the answer in the request context. It never rejects a request:
// authorization is decided per operation further down.
func Identify(v Verifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			isAdmin := false
			if c, err := r.Cookie(cookieName); err == nil {
				isAdmin = v.Verify(c.Value)
			}
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			RecordSessionCheck(isAdmin)

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), isAdmin)))
		})
	}
}

// WithAdmin returns a copy of ctx carrying the admin flag.
func WithAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, isAdmin)
}

// IsAdmin reports the flag set by Identify. Missing means anonymous.
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKey{}).(bool)
	return v
}
