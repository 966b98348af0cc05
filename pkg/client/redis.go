package client

import (
	"Revamp/config"
	"Revamp/pkg/log"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 未配置地址时返回 nil，限流和缓存都会跳过
func NewRedisClient(conf *config.Config) *redis.Client {
	if !conf.Redis.Enabled() {
		log.L.Warn("redis disabled, rate limit and zone cache are off")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		// 不阻止启动，调用方按不可用处理
		log.L.Warn("connect redis error", zap.Error(err))
		return client
	}
	log.L.Info("redis client success")
	return client
}
