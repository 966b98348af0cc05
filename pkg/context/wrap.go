package context

import (
	"Revamp/pkg/jwt"
	"Revamp/pkg/log"
	"Revamp/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
	CtxUser   = "user"
)

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Render(c, be)
				return
			}
			log.L.Error("handler error", zap.String("path", c.FullPath()), zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "Internal server error")
		}
	}
}

func GetUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(uint)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

// GetClaims Auth 中间件解析出的 token 信息
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
