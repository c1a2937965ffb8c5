// internal/middleware/requestlog.go
//
// Request-scoped logging middleware.
//
/*
Context
--------
Sits right after chi's RequestID.  For every request it derives a child of
the global sugared logger carrying the request ID, method, and path, and
stores it in the request context so handlers and the form package log
through `logger.FromContext`.  After the handler returns it emits one
INFO line with status and latency.

Notes
-----
  • Status capture uses chi's WrapResponseWriter.
  • Oxford commas, two spaces after periods.  No em dash.
*/
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/onboard/internal/logger"
)

// RequestLog attaches a request-scoped logger and logs completion.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := zap.S().With(
			"req_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), log)))

		log.Infow("request served",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur_ms", time.Since(start).Milliseconds(),
		)
	})
}
