package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"blog-cms/helper"
	"blog-cms/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 3 * time.Minute
	limiterIdleTTL         = 5 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter throttles login attempts per client IP.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	interval time.Duration
	burst    int
	helper   *helper.HTTPHelper

	done      chan struct{}
	closeOnce sync.Once
}

// NewLoginRateLimiter allows perMinute attempts per IP with the given burst.
// Call Close to stop the background cleanup.
func NewLoginRateLimiter(perMinute, burst int, h *helper.HTTPHelper) *LoginRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	rl := &LoginRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Every(interval),
		interval: interval,
		burst:    burst,
		helper:   h,
		done:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *LoginRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, exists := rl.limiters[ip]; exists {
		l.lastSeen = time.Now()
		return l.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = &ipLimiter{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, l := range rl.limiters {
				if time.Since(l.lastSeen) > limiterIdleTTL {
					delete(rl.limiters, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (rl *LoginRateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.done) })
}

func (rl *LoginRateLimiter) retryAfterSeconds() int {
	return max(int(math.Ceil(rl.interval.Seconds())), 1)
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header.
func (rl *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getLimiter(c.ClientIP()).Allow() {
			metrics.RecordLogin(metrics.LoginRateLimited)
			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			rl.helper.SendTooManyRequests(c, "too many login attempts, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
