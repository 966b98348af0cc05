package middleware

import (
	"Revamp/pkg/log"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter 固定窗口计数器
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

// ParseRate 解析 "30/minute" 这种写法
func ParseRate(rate string) (int, time.Duration, error) {
	parts := strings.SplitN(strings.TrimSpace(rate), "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rate %q", rate)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil || n <= 0 {
		return 0, 0, fmt.Errorf("invalid rate %q", rate)
	}
	var window time.Duration
	switch parts[1] {
	case "second":
		window = time.Second
	case "minute":
		window = time.Minute
	case "hour":
		window = time.Hour
	case "day":
		window = 24 * time.Hour
	default:
		return 0, 0, fmt.Errorf("invalid rate unit %q", parts[1])
	}
	return n, window, nil
}

// MustParseRate 路由注册时使用，写错直接 panic
func MustParseRate(rate string) (int, time.Duration) {
	n, w, err := ParseRate(rate)
	if err != nil {
		panic(err)
	}
	return n, w
}

// RateLimit 按 路由+客户端IP 限流；limiter 不可用时放行
func RateLimit(l Limiter, rate string) gin.HandlerFunc {
	limit, window := MustParseRate(rate)
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		key := c.Request.Method + ":" + c.FullPath() + ":" + c.ClientIP()
		ok, remaining, err := l.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.L.Debug("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			rateLimitedTotal.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", strconv.Itoa(int(window/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded. Please try again later.",
				"message": "Too many requests. Please wait before making more requests.",
			})
			return
		}
		c.Next()
	}
}
