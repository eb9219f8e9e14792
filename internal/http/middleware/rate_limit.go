package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 10 * time.Minute
	cleanupInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per client IP as resolved by the engine's
// trusted proxies. A non-positive rps disables it.
func RateLimit(rps float64, burst int, log zerolog.Logger) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}

	var (
		mu          sync.Mutex
		visitors    = make(map[string]*clientLimiter)
		lastCleanup time.Time
	)

	return func(c *gin.Context) {
		now := time.Now()
		key := c.ClientIP()

		mu.Lock()
		v, ok := visitors[key]
		if !ok {
			v = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			visitors[key] = v
		}
		v.lastSeen = now

		if now.Sub(lastCleanup) > cleanupInterval {
			for k, visitor := range visitors {
				if now.Sub(visitor.lastSeen) > visitorTTL {
					delete(visitors, k)
				}
			}
			lastCleanup = now
		}
		mu.Unlock()

		if !v.limiter.AllowN(now, 1) {
			log.Warn().
				Str("client", key).
				Str("path", c.Request.URL.Path).
				Str("request_id", GetRequestID(c)).
				Msg("rate limit exceeded")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
