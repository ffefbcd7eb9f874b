package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/movementor/backend/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery keeps a panicking handler from taking the whole server down.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorf("http: panic serving %s: %v\n%s", r.URL.Path, rec, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
