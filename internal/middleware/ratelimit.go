package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds the token-bucket settings for both limiters.
type RateLimitConfig struct {
	// GlobalRate is requests per second for general API endpoints.
	GlobalRate float64

	// GlobalBurst is the burst size for general API endpoints.
	GlobalBurst int

	// AssistRate is requests per second for the AI assist endpoints.
	// These calls fan out to a paid model API, so the budget is tight.
	AssistRate float64

	// AssistBurst is the burst size for the AI assist endpoints.
	AssistBurst int

	// CleanupInterval is how often idle per-IP limiters are evicted.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the default rate limit settings:
// 100 req/sec (burst 200) globally, 10 req/min (burst 3) for assists.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		GlobalRate:      100.0,
		GlobalBurst:     200,
		AssistRate:      10.0 / 60.0,
		AssistBurst:     3,
		CleanupInterval: time.Hour,
	}
}

// RateLimiter applies per-IP token-bucket rate limiting.
//
// Limiters are tracked per client IP in a sync.Map and evicted after an
// hour of inactivity by a background goroutine. The client IP comes from
// c.RealIP(), so Echo's IPExtractor must be configured correctly when the
// server sits behind a proxy; otherwise X-Forwarded-For spoofing bypasses
// the limits.
type RateLimiter struct {
	limiters sync.Map // IP address -> *limiterEntry
	logger   *slog.Logger
	config   RateLimitConfig
	ctx      context.Context
	cancel   context.CancelFunc
}

// limiterEntry wraps a rate limiter with its last access time.
// lastAccess is a Unix timestamp so cleanup can read it atomically.
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess atomic.Int64
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Call Shutdown during graceful shutdown to stop the goroutine.
func NewRateLimiter(logger *slog.Logger, config RateLimitConfig) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		logger: logger,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	go rl.cleanupOldLimiters()

	return rl
}

// Middleware returns the global per-IP rate limiting middleware.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return rl.middleware(rl.config.GlobalRate, rl.config.GlobalBurst, "", "1")
}

// AssistMiddleware returns a stricter middleware for the AI assist
// endpoints. It shares the limiter map with the global middleware but keys
// the assist budget separately, so heavy browsing never starves assists
// and vice versa.
func (rl *RateLimiter) AssistMiddleware() echo.MiddlewareFunc {
	return rl.middleware(rl.config.AssistRate, rl.config.AssistBurst, "assist:", "60")
}

func (rl *RateLimiter) middleware(r float64, burst int, keyPrefix, retryAfter string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			limiter := rl.getLimiter(keyPrefix+ip, r, burst)

			if !limiter.Allow() {
				rl.logger.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", c.Path()),
					slog.String("method", c.Request().Method))

				c.Response().Header().Set("Retry-After", retryAfter)
				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%.0f", r))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")

				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%.0f", r))
			return next(c)
		}
	}
}

// getLimiter returns the limiter for a key, creating it race-free on first use.
func (rl *RateLimiter) getLimiter(key string, r float64, burst int) *rate.Limiter {
	if entry, exists := rl.limiters.Load(key); exists {
		limEntry := entry.(*limiterEntry)
		limEntry.lastAccess.Store(time.Now().Unix())
		return limEntry.limiter
	}

	entry := &limiterEntry{
		limiter: rate.NewLimiter(rate.Limit(r), burst),
	}
	entry.lastAccess.Store(time.Now().Unix())
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

// cleanupOldLimiters evicts limiters idle for more than an hour.
func (rl *RateLimiter) cleanupOldLimiters() {
	interval := rl.config.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	const inactivitySeconds = int64(3600)

	for {
		select {
		case <-ticker.C:
			var removed int
			now := time.Now().Unix()

			rl.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*limiterEntry)
				if now-entry.lastAccess.Load() > inactivitySeconds {
					rl.limiters.Delete(key)
					removed++
				}
				return true
			})

			if removed > 0 {
				rl.logger.Info("cleaned up idle rate limiters", slog.Int("removed", removed))
			}
		case <-rl.ctx.Done():
			return
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (rl *RateLimiter) Shutdown() {
	if rl.cancel != nil {
		rl.cancel()
	}
}
