package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/xiaoshicae/xactor/xlog"

	"github.com/gin-gonic/gin"
)

const maxStackSize = 16384

// Recover panic 恢复，handle 为空时返回 500
func Recover(handle gin.RecoveryFunc) gin.HandlerFunc {
	if handle == nil {
		handle = defaultHandleRecovery
	}
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			brokenPipe := isBrokenPipe(r)
			xlog.Error(c.Request.Context(), "[xgin] panic recovered, path=[%s], err=[%v]", c.Request.URL.Path, r,
				xlog.KV("panic_brokenPipe", brokenPipe),
				xlog.KV("panic_stack", stack()),
			)

			if brokenPipe {
				_ = c.Error(r.(error)) //nolint: errcheck
				c.Abort()
				return
			}
			if c.Writer.Written() {
				c.Abort()
				return
			}
			handle(c, r)
		}()
		c.Next()
	}
}

// isBrokenPipe 连接已被对端关闭，不需要再写响应
func isBrokenPipe(r any) bool {
	ne, ok := r.(*net.OpError)
	if !ok {
		return false
	}
	var se *os.SyscallError
	if !errors.As(ne, &se) {
		return false
	}
	s := strings.ToLower(se.Error())
	return strings.Contains(s, "broken pipe") || strings.Contains(s, "connection reset by peer")
}

func defaultHandleRecovery(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func stack() string {
	buf := make([]byte, maxStackSize)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
