package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// LatencyRecorder receives per-route request latency observations
type LatencyRecorder interface {
	RecordRequestLatency(ctx context.Context, route string, latency time.Duration)
}

// RequestMetrics records request latency per chi route pattern. It reads the
// pattern after the handler ran, so parameterized routes collapse into one
// series instead of one per ID.
func RequestMetrics(recorder LatencyRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			recorder.RecordRequestLatency(r.Context(), route, time.Since(start))
		})
	}
}
