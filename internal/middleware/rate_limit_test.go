// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func setupRateLimitedRouter(limit gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", limit, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func doRequest(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitExhaustsBurst(t *testing.T) {
	r := setupRateLimitedRouter(RateLimit(rate.Every(time.Hour), 2))

	assert.Equal(t, http.StatusOK, doRequest(r, "192.0.2.1:1000"))
	assert.Equal(t, http.StatusOK, doRequest(r, "192.0.2.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "192.0.2.1:1000"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	r := setupRateLimitedRouter(RateLimit(rate.Every(time.Hour), 1))

	assert.Equal(t, http.StatusOK, doRequest(r, "192.0.2.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "192.0.2.1:1000"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, doRequest(r, "198.51.100.9:2000"))
}

func TestRateLimitInstancesAreIndependent(t *testing.T) {
	strict := RateLimit(rate.Every(time.Hour), 1)
	lenient := RateLimit(rate.Every(time.Hour), 5)

	strictRouter := setupRateLimitedRouter(strict)
	lenientRouter := setupRateLimitedRouter(lenient)

	assert.Equal(t, http.StatusOK, doRequest(strictRouter, "192.0.2.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(strictRouter, "192.0.2.1:1000"))

	// Exhausting one route's budget leaves the other untouched.
	assert.Equal(t, http.StatusOK, doRequest(lenientRouter, "192.0.2.1:1000"))
}
