package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/tasktrackr/task-tracker-api/internal/errors"
	"golang.org/x/time/rate"
)

// Eviction knobs; vars so tests can shrink them.
var (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = time.Minute
)

type ipLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitPerIP applies a token-bucket limit per client IP. Used on the
// login route to slow down credential guessing. Buckets idle past
// limiterIdleTTL are swept so the map does not grow with every client IP
// ever seen.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	buckets := make(map[string]*ipLimiter)
	lastSweep := time.Now()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) >= limiterSweepEvery {
			for key, b := range buckets {
				if now.Sub(b.seen) >= limiterIdleTTL {
					delete(buckets, key)
				}
			}
			lastSweep = now
		}
		b, ok := buckets[ip]
		if !ok {
			b = &ipLimiter{lim: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
		}
		b.seen = now
		lim := b.lim
		mu.Unlock()

		if lim.Allow() {
			c.Next()
			return
		}
		apierrors.RespondWithError(c, http.StatusTooManyRequests,
			apierrors.NewAPIError(apierrors.ErrCodeTooManyReqs, "Too many requests"))
		c.Abort()
	}
}
