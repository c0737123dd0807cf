// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const clientIdleEviction = 3 * time.Minute

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit builds a per-client-IP token bucket middleware. Each call owns
// its own client table, so a route group's budget never bleeds into
// another's. Idle clients are evicted in the background.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var (
		mtx     sync.Mutex
		clients = make(map[string]*rateLimitClient)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mtx.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > clientIdleEviction {
					delete(clients, ip)
				}
			}
			mtx.Unlock()
		}
	}()

	allow := func(ip string) bool {
		mtx.Lock()
		defer mtx.Unlock()

		client, ok := clients[ip]
		if !ok {
			client = &rateLimitClient{limiter: rate.NewLimiter(r, burst)}
			clients[ip] = client
		}
		client.lastSeen = time.Now()
		return client.limiter.Allow()
	}

	return func(c *gin.Context) {
		if !allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
