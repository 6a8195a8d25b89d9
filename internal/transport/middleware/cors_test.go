package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/forum-backend/internal/config"
)

func corsConfig(origins string) config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   "GET,POST,PUT,OPTIONS",
		AllowedHeaders:   "Authorization,Content-Type",
		AllowCredentials: true,
		MaxAge:           600,
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	handler := CORS(corsConfig("https://forum.example.com"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for preflight")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/topics", nil)
	req.Header.Set("Origin", "https://forum.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	h := rec.Header()
	assert.Equal(t, "https://forum.example.com", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Authorization,Content-Type", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", h.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "600", h.Get("Access-Control-Max-Age"))
	assert.Equal(t, "Origin", h.Get("Vary"))
}

func TestCORS_Origins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origins string
		origin  string
		want    string
	}{
		{"listed", "https://a.example.com, https://b.example.com", "https://b.example.com", "https://b.example.com"},
		{"not listed", "https://a.example.com", "https://evil.example.com", ""},
		{"wildcard echoes origin", "*", "https://any.example.com", "https://any.example.com"},
		{"empty list", "", "https://a.example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			handler := CORS(corsConfig(tt.origins))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_NoOriginHeader(t *testing.T) {
	t.Parallel()

	called := false
	handler := CORS(corsConfig("*"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/topics", nil))

	assert.True(t, called, "plain OPTIONS without Origin reaches the handler")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
