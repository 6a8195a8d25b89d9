package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

func TestChain_FirstMiddlewareRunsOutermost(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	validator := staticValidator(userID, domain.UserRoleUser)

	tests := []struct {
		name       string
		chain      Middleware
		token      string
		wantStatus int
	}{
		{"auth before require user", Chain(RequestID, Auth(validator), RequireUser), "valid-token", http.StatusOK},
		{"anonymous is rejected", Chain(RequestID, Auth(validator), RequireUser), "", http.StatusUnauthorized},
		{"require user before auth sees no actor", Chain(RequestID, RequireUser, Auth(validator)), "valid-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotActor ctxutil.Actor
			var gotRequestID string
			handler := tt.chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotActor, _ = ctxutil.ActorFromCtx(r.Context())
				gotRequestID = ctxutil.RequestIDFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/topics", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(requestIDHeader), "request id is set before any rejection")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotActor.UserID)
				assert.Equal(t, rec.Header().Get(requestIDHeader), gotRequestID)
			}
		})
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	called := false
	handler := Chain()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChain_SkipsNil(t *testing.T) {
	t.Parallel()

	var hits int
	count := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	}

	// A disabled middleware is passed as nil, e.g. rate limiting turned off.
	handler := Chain(count, nil, count)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 2, hits)
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, http.StatusTooManyRequests, "rate limit exceeded")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"error": "rate limit exceeded"}, body)
}
