package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/internal/metrics"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
	// Name labels rejections in metrics
	Name string
}

// RateLimiter is a fixed-window limiter backed by Redis
type RateLimiter struct {
	redis  redis.Cmdable
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient redis.Cmdable, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewRecipeCreationRateLimiter limits recipe creation to 20 per user per hour
func NewRecipeCreationRateLimiter(redisClient redis.Cmdable) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     20,
		KeyPrefix: "rate_limit:recipe_creation",
		Name:      "recipe_creation",
	})
}

// NewRecipeModificationRateLimiter limits updates and deletes to 60 per
// user per recipe per hour
func NewRecipeModificationRateLimiter(redisClient redis.Cmdable) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     60,
		KeyPrefix: "rate_limit:recipe_modification",
		Name:      "recipe_modification",
	})
}

// NewFavoriteRateLimiter limits favorite toggles to 120 per user per hour
func NewFavoriteRateLimiter(redisClient redis.Cmdable) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     120,
		KeyPrefix: "rate_limit:favorite",
		Name:      "favorite",
	})
}

// NewImageUploadRateLimiter limits presigned upload requests to 30 per user per hour
func NewImageUploadRateLimiter(redisClient redis.Cmdable) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     30,
		KeyPrefix: "rate_limit:image_upload",
		Name:      "image_upload",
	})
}

// RateLimitMiddleware limits each authenticated user across all requests it guards
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context, userID string) string {
		return userID
	}, "requests")
}

// PerRecipeRateLimitMiddleware limits each user separately per :id recipe
func (rl *RateLimiter) PerRecipeRateLimitMiddleware() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context, userID string) string {
		return fmt.Sprintf("%s:%s", userID, c.Param("id"))
	}, "modifications per recipe")
}

func (rl *RateLimiter) middleware(keyFor func(c *gin.Context, userID string) string, unit string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), keyFor(c, userID.String()))
		if err != nil {
			// fail open when Redis is unavailable
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("limiter", rl.config.Name).Msg("rate limit check failed")
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			metrics.RateLimited.WithLabelValues(rl.config.Name).Inc()
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate limit exceeded",
				"message": fmt.Sprintf("You have exceeded the rate limit of %d %s per %v", rl.config.Limit, unit, rl.config.Window),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request against key and reports whether it fits the window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	return count <= rl.config.Limit, remaining, resetTime, nil
}
