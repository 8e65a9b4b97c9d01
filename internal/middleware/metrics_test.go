package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// =============================================================================
// Metrics Auth Middleware Tests
// =============================================================================

func serveMetrics(mw *MetricsAuthMiddleware, setup func(*http.Request)) *httptest.ResponseRecorder {
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("savant_enquiries_total 3"))
	}))

	req := httptest.NewRequest("GET", "/metrics", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMetricsAuthMiddleware_AllowsValidCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("prometheus", "scrape-secret", slog.Default())

	rec := serveMetrics(mw, func(r *http.Request) { r.SetBasicAuth("prometheus", "scrape-secret") })

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "savant_enquiries_total 3" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestMetricsAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{name: "no credentials"},
		{name: "wrong password", setup: func(r *http.Request) { r.SetBasicAuth("prometheus", "guess") }},
		{name: "wrong user", setup: func(r *http.Request) { r.SetBasicAuth("admin", "scrape-secret") }},
		{name: "password prefix", setup: func(r *http.Request) { r.SetBasicAuth("prometheus", "scrape") }},
		{name: "bearer token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer scrape-secret") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mw := NewMetricsAuthMiddleware("prometheus", "scrape-secret", slog.New(slog.NewTextHandler(&buf, nil)))

			rec := serveMetrics(mw, tt.setup)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
			if !strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Basic ") {
				t.Errorf("expected Basic WWW-Authenticate header, got %q", rec.Header().Get("WWW-Authenticate"))
			}
			if strings.Contains(rec.Body.String(), "savant_") {
				t.Error("metrics must not be served without valid credentials")
			}
			if strings.Contains(buf.String(), "scrape-secret") {
				t.Errorf("log leaks configured password: %s", buf.String())
			}
		})
	}
}

func TestMetricsAuthMiddleware_DisabledWhenUnconfigured(t *testing.T) {
	mw := NewMetricsAuthMiddleware("", "", slog.Default())

	if mw.Enabled() {
		t.Error("expected auth to be disabled without credentials")
	}

	rec := serveMetrics(mw, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 when auth disabled, got %d", rec.Code)
	}
}
