package cache

import (
	"Revamp/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrDisabled = errors.New("redis disabled")

// RateLimitStorage 固定窗口计数器
type RateLimitStorage struct {
	redis  *redis.Client
	prefix string
	now    func() time.Time
}

func NewRateLimitStorage(rds *redis.Client, conf *config.Config) *RateLimitStorage {
	prefix := conf.RateLimit.Prefix
	if prefix == "" {
		prefix = "revamp"
	}
	return &RateLimitStorage{redis: rds, prefix: prefix, now: time.Now}
}

// Allow 当前窗口内第 limit+1 次起返回 false
// @params key    调用方标识，一般为 路由+IP
// @params limit  窗口内允许的次数
// @params window 窗口长度
func (s *RateLimitStorage) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	if s == nil || s.redis == nil {
		return true, limit, ErrDisabled
	}

	bucket := s.now().Unix() / int64(window/time.Second)
	k := fmt.Sprintf("%s:rl:%s:%d", s.prefix, key, bucket)

	var incr *redis.IntCmd
	_, err := s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, window)
		return nil
	})
	if err != nil {
		return true, limit, err
	}

	n := int(incr.Val())
	if n > limit {
		return false, 0, nil
	}
	return true, limit - n, nil
}
