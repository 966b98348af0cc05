package cache

import (
	"Revamp/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ZoneStorage 上游区域数据的响应缓存，只缓存合法的 JSON
type ZoneStorage struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

func NewZoneStorage(rds *redis.Client, conf *config.Config) *ZoneStorage {
	prefix := conf.RateLimit.Prefix
	if prefix == "" {
		prefix = "revamp"
	}
	return &ZoneStorage{redis: rds, prefix: prefix, ttl: conf.Zones.CacheTTL()}
}

// Get 未命中返回 nil, nil
func (s *ZoneStorage) Get(ctx context.Context, boundsKey string) ([]byte, error) {
	if s == nil || s.redis == nil {
		return nil, ErrDisabled
	}
	b, err := s.redis.Get(ctx, s.key(boundsKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *ZoneStorage) Set(ctx context.Context, boundsKey string, data []byte) error {
	if s == nil || s.redis == nil {
		return ErrDisabled
	}
	return s.redis.Set(ctx, s.key(boundsKey), data, s.ttl).Err()
}

func (s *ZoneStorage) key(boundsKey string) string {
	return fmt.Sprintf("%s:zones:%s", s.prefix, boundsKey)
}
