package middleware

import (
	"github.com/xiaoshicae/xactor/xlog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// Session 注入 request id，之后该请求内的日志都会带上 requestId 字段
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := xlog.CtxWithKV(c.Request.Context(), map[string]any{"requestId": requestID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
