package config

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/romansndlr/remix-todos/internal/core/telemetry"
	. "github.com/romansndlr/remix-todos/pkg"
)

const defaultRateLimitKey = "default"

type RateLimiter struct {
	store   RateLimitStore
	routes  map[string]RouteRateLimit
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.RWMutex
}

// NewRateLimiter limits requests per client IP using the per-route limits in
// cfg. metrics may be nil.
func NewRateLimiter(cfg RateLimitConfig, store RateLimitStore, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	routes := make(map[string]RouteRateLimit, len(cfg.Routes)+1)

	for key, limit := range cfg.Routes {
		routes[key] = limit
	}

	if _, ok := routes[defaultRateLimitKey]; !ok {
		routes[defaultRateLimitKey] = RouteRateLimit{Requests: 60, Window: Duration{time.Minute}}
	}

	return &RateLimiter{
		store:   store,
		routes:  routes,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path
		limit := rl.limitFor(methodPath)
		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, GetClientIP(c))

		count, resetTime, err := rl.store.Hit(c.Request.Context(), key, limit.Window.Duration)

		if err != nil {
			rl.logger.Error("Rate limit check failed",
				zap.String("key", key),
				zap.String("path", path),
				zap.Error(err))
			c.Next()
			return
		}

		remaining := limit.Requests - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if count > limit.Requests {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", limit.Requests),
				zap.Duration("window", limit.Window.Duration))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", limit.Requests, limit.Window.Duration),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) limitFor(methodPath string) RouteRateLimit {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	if limit, ok := rl.routes[methodPath]; ok {
		return limit
	}

	return rl.routes[defaultRateLimitKey]
}

func (rl *RateLimiter) SetLimit(methodPath string, limit RouteRateLimit) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.routes[methodPath] = limit
}
