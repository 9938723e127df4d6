package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(IPRateLimitMiddleware(ctx, rps, burst, discardLogger()))
	router.POST("/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func sendFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestIPRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		w := sendFrom(router, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestIPRateLimitMiddleware_Returns429WithRetryAfterHeader(t *testing.T) {
	router := newRateLimitedRouter(t, 0.5, 2)

	for i := 0; i < 2; i++ {
		w := sendFrom(router, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := sendFrom(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestIPRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)

	assert.Equal(t, http.StatusOK, sendFrom(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(router, "10.0.0.1:5678").Code)
	assert.Equal(t, http.StatusOK, sendFrom(router, "10.0.0.2:1234").Code)
}

func TestIPRateLimiterStore_RemoveIdleSince(t *testing.T) {
	store := &ipRateLimiterStore{rps: 1, burst: 1}

	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")

	val, ok := store.limiters.Load("10.0.0.1")
	assert.True(t, ok)
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.removeIdleSince(time.Now().Add(-time.Hour))

	_, ok = store.limiters.Load("10.0.0.1")
	assert.False(t, ok)
	_, ok = store.limiters.Load("10.0.0.2")
	assert.True(t, ok)
}

func TestIPRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := &ipRateLimiterStore{rps: 1, burst: 1}

	first := store.getLimiter("10.0.0.1")
	second := store.getLimiter("10.0.0.1")

	assert.Same(t, first, second)
}
