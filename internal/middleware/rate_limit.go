package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Request costs for the heavy endpoints. A caller's bucket holds Burst
// tokens and refills at the configured rate per minute.
const (
	CostReport     = 1
	CostArchive    = 3
	CostImport     = 5
	CostSettlement = 5
)

const (
	sweepInterval = 5 * time.Minute
	idleTTL       = 10 * time.Minute
)

// RateLimiter meters report rendering, spreadsheet imports and settlement
// runs per caller with token buckets.
type RateLimiter struct {
	perMinute int
	burst     int

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter refilling perMinute tokens per minute
// up to burst, and starts the idle-bucket sweeper
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		buckets:   make(map[string]*bucket),
		stop:      make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Take spends cost tokens from key's bucket. When refused, retryAfter is the
// time until enough tokens are available. Costs above the burst are capped.
func (r *RateLimiter) Take(key string, cost int) (ok bool, remaining int, retryAfter time.Duration) {
	if cost > r.burst {
		cost = r.burst
	}
	now := time.Now()

	r.mu.Lock()
	b, exists := r.buckets[key]
	if !exists {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(float64(r.perMinute)/60), r.burst)}
		r.buckets[key] = b
	}
	b.lastSeen = now
	r.mu.Unlock()

	if b.limiter.AllowN(now, cost) {
		return true, int(b.limiter.TokensAt(now)), 0
	}
	missing := float64(cost) - b.limiter.TokensAt(now)
	seconds := math.Ceil(missing * 60 / float64(r.perMinute))
	return false, 0, time.Duration(seconds) * time.Second
}

// sweep drops buckets idle since before cutoff
func (r *RateLimiter) sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for key, b := range r.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(r.buckets, key)
			dropped++
		}
	}
	return dropped
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			if n := r.sweep(now.Add(-idleTTL)); n > 0 {
				log.Debug().Int("buckets", n).Msg("Dropped idle rate limit buckets")
			}
		case <-r.stop:
			return
		}
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// callerKey prefers the registered user, then the Auth0 subject, then the
// client IP
func callerKey(c echo.Context) string {
	if p := GetPrincipal(c); p != nil {
		return "user:" + p.UserID.String()
	}
	if id := GetAuth0ID(c); id != "" {
		return "sub:" + id
	}
	return "ip:" + c.RealIP()
}

// Limit returns middleware charging cost tokens per request
func (r *RateLimiter) Limit(cost int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := callerKey(c)
			ok, remaining, retryAfter := r.Take(key, cost)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(r.perMinute))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if ok {
				return next(c)
			}

			wait := int(retryAfter / time.Second)
			if wait < 1 {
				wait = 1
			}
			h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(retryAfter).Unix(), 10))
			h.Set("Retry-After", strconv.Itoa(wait))

			log.Warn().
				Str("caller", key).
				Str("path", c.Path()).
				Int("cost", cost).
				Int("retry_after", wait).
				Msg("Rate limit exceeded")

			return c.JSON(http.StatusTooManyRequests, problemDetails{
				Type:     errorTypeRateLimit,
				Title:    "Rate Limit Exceeded",
				Status:   http.StatusTooManyRequests,
				Detail:   fmt.Sprintf("Too many requests. Please retry after %d seconds.", wait),
				Instance: c.Request().URL.Path,
			})
		}
	}
}
