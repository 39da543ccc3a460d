package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func limitedRouter(counter Counter, limit int) *gin.Engine {
	rl := NewRateLimiter(counter, RateLimitConfig{Window: time.Hour, Limit: limit, KeyPrefix: "test"}, zerolog.Nop())
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Session"); id != "" {
			c.Set(SessionIDKey, id)
		}
		c.Next()
	})
	router.Use(rl.RateLimitMiddleware())
	router.POST("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func call(router *gin.Engine, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	if session != "" {
		req.Header.Set("X-Session", session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("should allow up to the limit per session", func(t *testing.T) {
		router := limitedRouter(&memoryCounter{}, 2)

		first := call(router, "a")
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, call(router, "a").Code)

		blocked := call(router, "a")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
		assert.Contains(t, blocked.Body.String(), `"kind":"rate_limited"`)
		assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, call(router, "b").Code)
	})

	t.Run("should fall back to client ip", func(t *testing.T) {
		router := limitedRouter(&memoryCounter{}, 1)
		assert.Equal(t, http.StatusOK, call(router, "").Code)
		assert.Equal(t, http.StatusTooManyRequests, call(router, "").Code)
	})

	t.Run("should fail open when the counter errors", func(t *testing.T) {
		router := limitedRouter(&memoryCounter{err: errors.New("redis down")}, 1)
		w := call(router, "a")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	})
}
