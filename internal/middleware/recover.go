package middleware

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/learnhub-backend/internal/api/httpx"
)

// Recover turns a handler panic into a 500 envelope logged on log.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.ErrorContext(r.Context(), "panic", "err", rec, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
