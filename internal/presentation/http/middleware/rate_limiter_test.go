package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001, // effectively no refill during the test
		BurstSize:         burst,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	router := newLimitedRouter(3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	router := newLimitedRouter(2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", last.Header().Get("Retry-After"))
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1000"
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1001"
	router.ServeHTTP(blocked, req)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}
