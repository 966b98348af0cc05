package response

import (
	"Revamp/pkg/log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BizError struct {
	Code int
	Msg  string
	// Detail 不为空时代替 Msg 输出，用于结构化的错误信息
	Detail any
	// Header 随错误一起返回的响应头
	Header map[string]string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// NewDetailError detail 为对象时使用
func NewDetailError(code int, msg string, detail any) *BizError {
	return &BizError{
		Code:   code,
		Msg:    msg,
		Detail: detail,
	}
}

// WithHeader 附带响应头
func (e *BizError) WithHeader(key, value string) *BizError {
	if e.Header == nil {
		e.Header = make(map[string]string)
	}
	e.Header[key] = value
	return e
}

func (e *BizError) Body() Response {
	if e.Detail != nil {
		return Response{Detail: e.Detail}
	}
	return Response{Detail: e.Msg}
}

// Recovery panic 时返回 500，不把堆栈暴露给调用方
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
					Detail: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Detail: msg,
	})
}
