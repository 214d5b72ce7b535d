package xtrace

import (
	"context"
	"strings"

	"github.com/xiaoshicae/xactor/xconfig"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	XTraceEnableKey = "XTrace.Enable"

	instrumentationName = "github.com/xiaoshicae/xactor"
)

// EnableTrace 需要明确配置 false 才会关闭
func EnableTrace() bool {
	return strings.ToLower(strings.TrimSpace(xconfig.GetString(XTraceEnableKey))) != "false"
}

// Tracer 框架内统一使用的 tracer，未初始化时为 noop
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start 开启一个内部 span
func Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, spanName, opts...)
}
