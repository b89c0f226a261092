package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tunepipe/internal/platform/logger"
	"tunepipe/internal/platform/net/middleware"
)

func TestRequestScope_EnrichesLoggerContext(t *testing.T) {
	var buf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.C(r.Context()).Output(&buf)
		log.Info().Msg("inside")
		w.WriteHeader(http.StatusOK)
	})

	h := middleware.RequestID()(middleware.RequestScope()(next))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Fatalf("expected request_id in log output, got %q", buf.String())
	}
}

func TestRequestScope_NoRequestIDStillServes(t *testing.T) {
	var buf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.C(r.Context()).Output(&buf)
		log.Info().Msg("inside")
		w.WriteHeader(http.StatusNoContent)
	})

	// scope without RequestID in front, nothing to copy
	h := middleware.RequestScope()(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}
	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("expected no request_id field, got %q", buf.String())
	}
}
