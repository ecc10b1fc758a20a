package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flowohq/storefront-gateway/pkg/metrics"
)

// Metrics records per-route request counts and latencies. The route label is
// the chi pattern, not the raw path, so token-bearing URLs don't explode the
// cardinality.
func Metrics(m *metrics.RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			route := chi.RouteContext(r.Context()).RoutePattern()
			m.ObserveRequest(route, r.Method, rec.status, time.Since(start))
		})
	}
}
