package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func limitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// zero refill rate: the burst is all a client ever gets
	r.GET("/login", RateLimitPerIP(rate.Limit(0), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hitFrom(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitPerIP(t *testing.T) {
	r := limitedRouter()

	require.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1:1000"))
	require.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1:1000"))

	// other clients have their own bucket
	require.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2:1000"))
}

func TestRateLimitEvictsIdleBuckets(t *testing.T) {
	oldTTL, oldSweep := limiterIdleTTL, limiterSweepEvery
	limiterIdleTTL, limiterSweepEvery = 10*time.Millisecond, 5*time.Millisecond
	defer func() { limiterIdleTTL, limiterSweepEvery = oldTTL, oldSweep }()

	r := limitedRouter()

	require.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1:1000"))
	require.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1:1000"))

	time.Sleep(20 * time.Millisecond)

	// any request past the sweep interval drops idle buckets
	require.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2:1000"))

	// evicted client starts over with a fresh burst
	require.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1:1000"))
}
