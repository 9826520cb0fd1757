package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins))
	r.POST("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS_PreflightAdvertisesServedSurface(t *testing.T) {
	r := corsRouter([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}

	headers := w.Header().Get("Access-Control-Allow-Headers")
	if strings.Contains(headers, "Authorization") {
		t.Fatalf("no endpoint consumes Authorization, but preflight advertises it: %q", headers)
	}
	if !strings.Contains(headers, "X-Request-ID") {
		t.Fatalf("expected X-Request-ID in allowed headers, got %q", headers)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); strings.Contains(methods, "PUT") {
		t.Fatalf("no PUT route exists, but preflight advertises it: %q", methods)
	}
}

func TestCORS_EchoesAllowedOriginOnly(t *testing.T) {
	r := corsRouter([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected origin echoed back, got %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for unlisted origin: %q", got)
	}
}
