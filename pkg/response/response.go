package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 错误响应体，{"detail": ...}
type Response struct {
	Detail any `json:"detail"`
}

// Message 只有提示信息的成功响应
type Message struct {
	Message string `json:"message"`
}

// Success 直接输出数据，不包外层
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Render 输出业务错误
func Render(c *gin.Context, be *BizError) {
	for k, v := range be.Header {
		c.Header(k, v)
	}
	c.AbortWithStatusJSON(be.Code, be.Body())
}
