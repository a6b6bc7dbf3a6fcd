package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter pairs a token bucket with its last use for pruning
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a per-client token bucket middleware keyed on client IP.
// Disabled or non-positive configuration yields a no-op.
func RateLimit(enabled bool, requestsPerHour int) gin.HandlerFunc {
	if !enabled || requestsPerHour <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limit := rate.Limit(float64(requestsPerHour) / 3600.0)
	burst := requestsPerHour / 10
	if burst < 5 {
		burst = 5
	}

	var mu sync.Mutex
	clients := make(map[string]*clientLimiter)

	prune := func(now time.Time) {
		for key, cl := range clients {
			if now.Sub(cl.lastSeen) > time.Hour {
				delete(clients, key)
			}
		}
	}

	return func(c *gin.Context) {
		now := time.Now()

		mu.Lock()
		cl, ok := clients[c.ClientIP()]
		if !ok {
			if len(clients) > 10000 {
				prune(now)
			}
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
			clients[c.ClientIP()] = cl
		}
		cl.lastSeen = now
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
