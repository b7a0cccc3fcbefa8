package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logging logs one line per request with the chi request id attached.
func Logging(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			l := base.With(
				slog.String("req_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("resp_bytes", ww.BytesWritten()),
				slog.Int64("dur_ms", time.Since(start).Milliseconds()),
			)

			if ww.Status() >= http.StatusBadRequest {
				l.Error("http_request")
				return
			}
			l.Info("http_request")
		})
	}
}
