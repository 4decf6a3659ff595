package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"wav-steganography/config"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:           "0",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadMB:    1,
		LogLevel:       "info",
		GinMode:        "test",
	}
}

func TestNewRouterRoutes(t *testing.T) {
	router := NewRouter(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/health",
		"POST /api/v1/stego/encode",
		"POST /api/v1/stego/decode",
		"POST /api/v1/stego/capacity",
	} {
		if !routes[want] {
			t.Errorf("missing route %s", want)
		}
	}
}

func TestNewRouterCORS(t *testing.T) {
	router := NewRouter(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got == "" {
		t.Error("expected exposed stego headers")
	}
}
