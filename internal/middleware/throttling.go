package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"calldeskrest/internal/config"
	"calldeskrest/internal/models/dto"
	redisInternal "calldeskrest/internal/repositories/redis"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxRequests = 120
	rateLimitWindow    = 60 * time.Second
	rateLimitPrefix    = "calldesk:ratelimit:"
)

// RateLimiter counts requests per client IP in fixed Redis windows
type RateLimiter struct {
	redis       *redisInternal.RedisInternal
	maxRequests int
	window      time.Duration
}

// NewRateLimiter returns a limiter allowing maxRequests per window
func NewRateLimiter(redisClient *redisInternal.RedisInternal, maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	if window <= 0 {
		window = rateLimitWindow
	}
	return &RateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
	}
}

func setupRateLimiter(engine *gin.Engine, cfg *config.App) {
	s := cfg.Settings.Server
	rateLimiter := NewRateLimiter(cfg.Redis, s.MaxRequestsPerIP, config.Duration(s.RateWindow, rateLimitWindow))
	engine.Use(rateLimiter.Middleware())
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := rl.checkRateLimit(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal server error", "rate limiter unavailable", err.Error()))
			return
		}

		if !allowed {
			rl.handleRateLimitExceeded(c, retryAfter)
			return
		}

		c.Next()
	}
}

// checkRateLimit verifica se o IP pode fazer a requisição
func (rl *RateLimiter) checkRateLimit(ctx context.Context, ip string) (allowed bool, retryAfter time.Duration, err error) {
	key := rateLimitPrefix + ip

	val, err := rl.redis.Get(ctx, key).Result()

	// first request in the window
	if errors.Is(err, redisInternal.Nil) {
		if err := rl.redis.Set(ctx, key, 1, rl.window).Err(); err != nil {
			return false, 0, err
		}
		return true, 0, nil
	}
	if err != nil {
		return false, 0, err
	}

	requestCount, err := strconv.Atoi(val)
	if err != nil {
		return false, 0, err
	}

	if requestCount >= rl.maxRequests {
		ttl, err := rl.redis.TTL(ctx, key).Result()
		if err != nil {
			return false, 0, err
		}
		return false, ttl, nil
	}

	if err := rl.redis.Incr(ctx, key).Err(); err != nil {
		return false, 0, err
	}
	return true, 0, nil
}

func (rl *RateLimiter) handleRateLimitExceeded(c *gin.Context, retryAfter time.Duration) {
	seconds := strconv.Itoa(int(retryAfter.Round(time.Second) / time.Second))
	c.Writer.Header().Set("Retry-After", seconds)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewRateLimitErrorResponse(c, seconds, rl.maxRequests))
}

// setupSemaphore caps the number of requests served at once
func setupSemaphore(engine *gin.Engine, max int64) {
	if max <= 0 {
		max = 10
	}
	engine.Use(ConcurrencyLimit(semaphore.NewWeighted(max)))
}

// ConcurrencyLimit holds a slot of sema for the duration of each request
func ConcurrencyLimit(sema *semaphore.Weighted) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sema.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(c, http.StatusTooManyRequests, "Too many requests", "server is busy", nil))
			return
		}
		defer sema.Release(1)
		c.Next()
	}
}
