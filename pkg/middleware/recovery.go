package middleware

import (
	"net/http"
	"runtime/debug"

	"marsa/pkg/errors"
	"marsa/pkg/logger"
)

// Recovery converts handler panics into a 500 response. Webhook handlers
// additionally recover per event inside the processor; this is the outer
// net for everything else.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recovered",
						"request_id", RequestID(r),
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					errors.WriteError(w, errors.Internal("internal server error", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
