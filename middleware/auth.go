package middleware

import (
	"Revamp/models"
	"Revamp/pkg/context"
	"Revamp/pkg/jwt"
	"Revamp/pkg/log"
	"Revamp/pkg/response"
	stdctx "context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidCredentials = "Could not validate credentials"
	rotateBuffer          = 2 * time.Minute
)

// Auth 校验 Bearer token，写入 claims 和 user_id
func Auth(secret []byte, expire time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthorized(c)
			return
		}

		claims, err := jwt.ParseToken(secret, parts[1])
		if err != nil {
			log.L.Debug("parse token", zap.Error(err))
			unauthorized(c)
			return
		}

		// 快过期时通过响应头下发新 token
		if !claims.Guest && jwt.ShouldRotate(claims, rotateBuffer) {
			if newToken, err := jwt.GenerateToken(secret, claims.UserID, claims.Email(), expire); err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}

		c.Set(context.CtxClaims, claims)
		c.Set(context.CtxUserID, claims.UserID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Abort(c, http.StatusUnauthorized, msgInvalidCredentials)
}

// UserLoader 根据 token 加载当前用户
type UserLoader interface {
	CurrentUser(ctx stdctx.Context, claims *jwt.Claims) (*models.User, error)
}

// StatusOf 把加载用户的错误映射为 http 状态码
type StatusOf func(err error) (int, bool)

// ActiveUser 只允许已激活的注册用户，游客 403
func ActiveUser(users UserLoader, statusOf StatusOf) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := context.GetClaims(c)
		if !ok {
			unauthorized(c)
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), claims)
		if err != nil {
			if status, ok := statusOf(err); ok {
				response.Abort(c, status, err.Error())
				return
			}
			log.L.Error("load current user", zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(context.CtxUser, user)
		c.Set(context.CtxUserID, user.ID)
		c.Next()
	}
}

// CurrentUser ActiveUser 之后使用
func CurrentUser(c *gin.Context) (*models.User, error) {
	v, ok := c.Get(context.CtxUser)
	if !ok {
		return nil, errors.New("user 不存在")
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil, errors.New("user 类型错误")
	}
	return user, nil
}
