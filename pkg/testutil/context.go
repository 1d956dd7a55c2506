package testutil

import (
	"context"
	"net/http"
	"time"

	"roster/pkg/requestcontext"
)

// AtTime pins the request-scoped clock, as the requesttime middleware does.
func AtTime(ctx context.Context, now time.Time) context.Context {
	return requestcontext.WithTime(ctx, now)
}

// WithRequestTime pins the request-scoped clock on req.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(AtTime(req.Context(), now))
}
