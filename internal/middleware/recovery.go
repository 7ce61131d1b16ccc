package middleware

import (
	"log/slog"
	"net/http"

	"github.com/vortex/composer-api/pkg/response"
)

// Recovery converts a panic escaping the handler chain into a 500
// response instead of crashing the process. A Model's command methods
// return the engine's own faults (dom.Fault, InvariantFault) as errors but
// re-raise any other panic, such as a runtime error inside a command, and
// such a panic reaches here as well.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", slog.Any("panic", rec), slog.String("path", r.URL.Path))
					response.Error(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
