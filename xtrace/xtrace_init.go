// Package xtrace 初始化 opentelemetry TracerProvider 与链路透传
package xtrace

import (
	"context"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xutil"

	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	defaultShutdownTimeout = 5 * time.Second

	shutdownFunc func(ctx context.Context) error
	shutdownMu   sync.Mutex
)

func init() {
	xhook.BeforeStart(initXTrace, xhook.Order(3))
	xhook.BeforeStop(shutdownXTrace, xhook.Order(900))
}

// SetShutdownTimeout 设置 TracerProvider 关闭超时
func SetShutdownTimeout(timeout time.Duration) {
	if timeout > 0 {
		defaultShutdownTimeout = timeout
	}
}

func initXTrace() error {
	c := &Config{}
	if err := xconfig.UnmarshalConfig(XTraceConfigKey, c); err != nil {
		return xerror.New("xtrace", "init", err)
	}
	c = configMergeDefault(c)

	if !*c.Enable {
		otel.SetTracerProvider(noop.NewTracerProvider())
		xutil.InfoIfEnableDebug("XActor initXTrace ignored, because of config XTrace.Enable=false")
		return nil
	}
	return initXTraceByConfig(c, xconfig.GetServerName(), xconfig.GetServerVersion())
}

func initXTraceByConfig(c *Config, serviceName, serviceVersion string) error {
	r, err := resource.New(
		context.Background(),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return xerror.Newf("xtrace", "init", "create resource failed, err=[%w]", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(r),
	}
	if c.Console {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return xerror.Newf("xtrace", "init", "create stdout exporter failed, err=[%w]", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(newPropagator(c.ForwardHeaders))

	shutdownMu.Lock()
	shutdownFunc = tp.Shutdown
	shutdownMu.Unlock()
	return nil
}

// newPropagator W3C tracecontext + baggage + b3，按需追加 Header 透传
func newPropagator(forwardHeaders []string) propagation.TextMapPropagator {
	ps := []propagation.TextMapPropagator{
		propagation.TraceContext{},
		propagation.Baggage{},
		b3.New(b3.WithInjectEncoding(b3.B3MultipleHeader | b3.B3SingleHeader)),
	}
	if len(forwardHeaders) > 0 {
		ps = append(ps, NewHeaderPropagator(forwardHeaders))
	}
	return propagation.NewCompositeTextMapPropagator(ps...)
}

func shutdownXTrace() error {
	shutdownMu.Lock()
	fn := shutdownFunc
	shutdownFunc = nil
	shutdownMu.Unlock()

	if fn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	return fn(ctx)
}
