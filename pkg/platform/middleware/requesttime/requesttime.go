// Package requesttime pins one "now" per HTTP request so derived values such
// as a person's age are computed against the same instant across a listing.
package requesttime

import (
	"net/http"
	"time"

	"roster/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
