// internal/middleware/middleware_test.go
//
// Unit-tests for Security and RequestLog.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/onboard/internal/logger"
)

func TestSecurity_HeadersSent(t *testing.T) {
	h := Security(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/signup", nil))

	for _, k := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options"} {
		if rr.Header().Get(k) == "" {
			t.Errorf("header %s missing", k)
		}
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Errorf("HSTS sent over plain HTTP")
	}
}

func TestRequestLog_AttachesLogger(t *testing.T) {
	var got *zap.SugaredLogger
	h := chimw.RequestID(RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rr.Code)
	}
	if got == nil || got == zap.S() {
		t.Fatalf("request-scoped logger not attached")
	}
}
