package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ecocart/ecocart/logger"
	redisutil "github.com/ecocart/ecocart/util/redis"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures per-key request limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
}

// DefaultRateLimitConfig limits by client IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 60,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// AuthRateLimitConfig is the tighter limit for login and register, slowing
// credential stuffing and bulk registration.
func AuthRateLimitConfig() RateLimitConfig {
	cfg := DefaultRateLimitConfig()
	cfg.RequestsPerMinute = 10
	return cfg
}

// RateLimitMiddleware counts requests per key and minute in the redis
// utility (in-memory when Redis is not configured) and rejects the excess
// with 429.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		rateLimitKey := "ratelimit:" + key + ":" + c.Request.URL.Path

		newCount, err := redisutil.Incr(rateLimitKey)
		if err != nil {
			logger.Warning("rate limit increment failed:", err)
			c.Next()
			return
		}
		if newCount == 1 {
			redisutil.Expire(rateLimitKey, time.Minute)
		}

		if newCount > int64(config.RequestsPerMinute) {
			logger.Warningf("rate limit exceeded for %s on %s (count: %d)", key, c.Request.URL.Path, newCount)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"msg":     "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(config.RequestsPerMinute)-newCount, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}
