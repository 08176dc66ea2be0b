package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/observability"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles an authenticated route per user. It falls back to
// the client IP when no user is on the context.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	metrics  *observability.Metrics
	now      func() time.Time
	mu       sync.Mutex
	visitors map[string]*visitor
	swept    time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, metrics *observability.Metrics) *RateLimiter {
	perSecond := cfg.ReceiptsPerMinute / 60.0
	if perSecond <= 0 {
		perSecond = 1.0 / 60.0
	}
	burst := cfg.ReceiptBurst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		metrics:  metrics,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

func (r *RateLimiter) Limit(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = userID.String()
		}

		now := r.now()
		reservation := r.obtain(key, now).ReserveN(now, 1)
		if delay := reservation.DelayFrom(now); delay > 0 {
			reservation.CancelAt(now)
			r.metrics.Throttle(route)
			c.Header("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "Too many submissions, please slow down", "code": "rate_limited"},
			})
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) obtain(key string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.swept) > visitorIdleTTL {
		for k, v := range r.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(r.visitors, k)
			}
		}
		r.swept = now
	}

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}
