package xhttp

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/xiaoshicae/xactor/xtrace"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	defaultClient = resty.New()
	clientMu      sync.RWMutex
)

// C 获取默认 client，推荐使用 RWithCtx 以保证 trace 透传
func C() *resty.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return defaultClient
}

// RWithCtx 创建绑定 ctx 的请求
func RWithCtx(ctx context.Context) *resty.Request {
	return C().R().SetContext(ctx)
}

// NewClient 按配置创建 resty client，trace 开启时使用 otelhttp transport
func NewClient(c *Config) *resty.Client {
	c = configMergeDefault(c)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = c.MaxIdleConns
	transport.MaxIdleConnsPerHost = c.MaxIdleConnsPerHost
	transport.IdleConnTimeout = xutil.ToDuration(c.IdleConnTimeout)
	transport.DialContext = (&net.Dialer{Timeout: xutil.ToDuration(c.DialTimeout)}).DialContext

	var rt http.RoundTripper = transport
	if xtrace.EnableTrace() {
		rt = otelhttp.NewTransport(transport, otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
	}

	client := resty.NewWithClient(&http.Client{
		Transport: rt,
		Timeout:   xutil.ToDuration(c.Timeout),
	})
	if c.RetryCount > 0 {
		client.SetRetryCount(c.RetryCount).SetRetryWaitTime(xutil.ToDuration(c.RetryWaitTime))
	}
	return client
}

func setDefaultClient(client *resty.Client) {
	clientMu.Lock()
	defaultClient = client
	clientMu.Unlock()
}
