package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/changenotify/core/logger"
)

// Readiness verifies all service dependencies are functioning.
// Returns 200 "READY" if all checks pass, 503 if any fail.
//
// Example:
//
//	mux.Handle("GET /health/ready", health.Readiness(
//		log,
//		mongo.Healthcheck(client),
//		redis.Healthcheck(rdb),
//		processor.Healthcheck,
//	))
func Readiness(log *slog.Logger, fn ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, f := range fn {
			if err := f(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "Readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(http.StatusText(http.StatusServiceUnavailable)))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
