package handler

import (
	"Revamp/config"
	"Revamp/dao/cache"
	"Revamp/middleware"
	"Revamp/pkg/utils"
	"Revamp/service"

	"github.com/gin-gonic/gin"
)

// Guard 登录校验中间件
type Guard struct {
	// Authorize 只校验 token，游客也能通过
	Authorize gin.HandlerFunc
	// Active 需要已激活的注册用户，必须在 Authorize 之后
	Active gin.HandlerFunc
}

func NewGuard(conf *config.Config, auth service.IAuthService) (*Guard, error) {
	secret, err := conf.SecretKey()
	if err != nil {
		return nil, err
	}
	return &Guard{
		Authorize: middleware.Auth(secret, conf.Jwt.Expire()),
		Active:    middleware.ActiveUser(auth, statusOf),
	}, nil
}

// NewLimiter 关闭限流时返回 nil
func NewLimiter(conf *config.Config, storage *cache.RateLimitStorage) middleware.Limiter {
	if !conf.RateLimit.Enabled {
		return nil
	}
	return storage
}

// NewHashID 收藏 id 编码器
func NewHashID(conf *config.Config) (*utils.HashID, error) {
	return utils.NewHashID(conf.Hashids.Salt, conf.Hashids.MinLength)
}
