package middleware

import (
	"net/http"
	"time"

	"tenure/pkg/requestcontext"
)

// RequestTime pins one timestamp per request so every lifecycle decision
// made while handling it (status checks, start times, review timestamps)
// sees the same clock reading.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
