package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity *domain.Identity
	err      error
	gotToken string
}

func (s *stubVerifier) VerifyAccessToken(_ context.Context, token string) (*domain.Identity, error) {
	s.gotToken = token
	return s.identity, s.err
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	identity := &domain.Identity{OwnerID: "owner-1", Handle: "alice", Email: "alice@example.com"}

	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
	}{
		{"missing header", "", &stubVerifier{identity: identity}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", &stubVerifier{identity: identity}, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", &stubVerifier{err: errors.New("expired")}, http.StatusUnauthorized},
		{"valid token", "bearer good", &stubVerifier{identity: identity}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(middleware.AuthMiddleware(tt.verifier))
			r.GET("/me", func(c *gin.Context) {
				userID, ok := middleware.GetUserIDFromContext(c)
				require.True(t, ok)
				got, ok := middleware.GetIdentityFromContext(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"user_id": userID, "handle": got.Handle})
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "good", tt.verifier.gotToken)
				assert.JSONEq(t, `{"user_id":"owner-1","handle":"alice"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareRejectionsAreIndistinguishable(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		wantLog string
	}{
		{"missing header", "", "Authorization header missing"},
		{"malformed header", "Token abc def", "Authorization header format invalid"},
		{"forged token", "Bearer forged.jwt.value", "Invalid token"},
	}

	var bodies []string
	for _, tc := range cases {
		var logs bytes.Buffer
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(&logs, nil))))
		r.Use(middleware.AuthMiddleware(&stubVerifier{err: errors.New("signature is invalid")}))
		r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.name)
		assert.Contains(t, logs.String(), tc.wantLog, tc.name)
		bodies = append(bodies, w.Body.String())
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i], "%s vs %s", cases[0].name, cases[i].name)
	}
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.GetUserIDFromContext(c)
	assert.False(t, ok)
	_, ok = middleware.GetIdentityFromContext(c)
	assert.False(t, ok)
}

func TestGetLoggerFromCtxFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(context.Background(), logger)
	assert.Same(t, logger, middleware.GetLoggerFromCtx(ctx))
}

func TestStructuredLoggingMiddlewareSetsRequestID(t *testing.T) {
	r := newTestRouter()
	r.GET("/ping", func(c *gin.Context) {
		assert.NotSame(t, slog.Default(), middleware.GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	const given = "0b6f3c52-7c1e-4d53-9d8b-2a4b7f0e9a11"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	limiterInstance, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	r := newTestRouter(middleware.RateLimit(limiterInstance))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiterRejectsBadFormat(t *testing.T) {
	_, err := middleware.NewRateLimiter("five per minute")
	assert.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	r := newTestRouter(middleware.RequestTimeout(50 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsRecordsRoutes(t *testing.T) {
	r := newTestRouter(middleware.Metrics())
	r.GET("/accounts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts/123", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `duebook_http_requests_total{method="GET",route="/accounts/:id",status="200"}`)
}
