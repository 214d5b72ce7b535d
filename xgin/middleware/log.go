package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xiaoshicae/xactor/xlog"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/gin-gonic/gin"
)

const (
	FilteredValue = "***FILTERED***"

	maxRequestBodySize     = 256 * 1024
	maxResponseBodyCapture = 4 * 1024
)

var (
	sensitiveFields  = []string{"password", "token", "secret", "authorization", "api_key", "apikey", "access_token"}
	sensitiveHeaders = []string{"Authorization", "X-Api-Key", "X-Auth-Token", "Cookie"}
)

type LogOptions struct {
	SkipPaths []string
}

type LogOption func(*LogOptions)

// WithSkipPaths 不记录日志的路由，以 / 结尾时按前缀匹配，否则精确匹配
func WithSkipPaths(paths ...string) LogOption {
	return func(o *LogOptions) {
		o.SkipPaths = append(o.SkipPaths, paths...)
	}
}

// responseBodyWriter 捕获不超过 maxResponseBodyCapture 的响应
type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if w.body.Len()+len(b) <= maxResponseBodyCapture {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Log 请求日志，body 与 header 中的敏感字段会被替换
func Log(opts ...LogOption) gin.HandlerFunc {
	o := &LogOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return func(c *gin.Context) {
		if shouldSkip(c.Request.URL.Path, o.SkipPaths) {
			c.Next()
			return
		}

		begin := time.Now()
		reqBody := bodySnapshot(c.Request)
		rbw := &responseBodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rbw

		c.Next()

		elapsed := time.Since(begin)
		fields := map[string]any{
			"request_method":        c.Request.Method,
			"request_uri":           c.Request.RequestURI,
			"request_header":        xutil.ToJsonString(filterHeaders(c.Request.Header)),
			"request_body":          filterBody(string(reqBody), c.Request.Header.Get("Content-Type")),
			"request_clientIP":      c.ClientIP(),
			"response_status":       c.Writer.Status(),
			"process_latency":       elapsed.Milliseconds(),
			"process_latency_human": formatElapsed(elapsed),
		}
		if strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") && rbw.body.Len() > 0 {
			fields["response_body"] = rbw.body.String()
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		xlog.Info(c.Request.Context(), "[xgin] %s %s request processed", c.Request.Method, route, xlog.KVMap(fields))
	}
}

func shouldSkip(path string, skipPaths []string) bool {
	for _, skip := range skipPaths {
		if strings.HasSuffix(skip, "/") && strings.HasPrefix(path, skip) {
			return true
		}
		if path == skip {
			return true
		}
	}
	return false
}

// bodySnapshot 读取请求 body 并重新包装，保证后续 handler 可再次读取
func bodySnapshot(req *http.Request) []byte {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	ct := req.Header.Get("Content-Type")
	if strings.Contains(ct, "multipart/form-data") || strings.Contains(ct, "application/octet-stream") {
		return []byte("[binary body omitted]")
	}

	b, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBodySize))
	_ = req.Body.Close()
	if err != nil {
		return nil
	}
	req.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fus", float64(d.Nanoseconds())/1000.0)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000.0)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func filterBody(body, contentType string) string {
	if body == "" || !strings.Contains(contentType, "application/json") {
		return body
	}
	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return body
	}
	filterAny(data)
	return xutil.ToJsonString(data)
}

func filterAny(data any) {
	switch v := data.(type) {
	case map[string]any:
		for k, val := range v {
			if containsFold(k, sensitiveFields) {
				v[k] = FilteredValue
				continue
			}
			filterAny(val)
		}
	case []any:
		for _, item := range v {
			filterAny(item)
		}
	}
}

func filterHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if containsFold(k, sensitiveHeaders) {
			out[k] = []string{FilteredValue}
			continue
		}
		out[k] = v
	}
	return out
}

func containsFold(s string, list []string) bool {
	for _, item := range list {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
