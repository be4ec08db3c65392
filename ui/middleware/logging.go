package middleware

import (
	"net/http"
	"time"

	"datasight/internal"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request through logger, tagged with the
// chi request id when the RequestID middleware ran first.
func RequestLogger(logger *internal.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			l := logger
			if id := chimw.GetReqID(r.Context()); id != "" {
				l = logger.With("request_id", id)
			}
			msg := "[HTTP] %s %s %d %dB %s"
			args := []interface{}{r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start).Round(time.Microsecond)}
			switch {
			case status >= 500:
				l.Error(msg, args...)
			case status >= 400:
				l.Warn(msg, args...)
			default:
				l.Info(msg, args...)
			}
		})
	}
}
