package xtrace

import (
	"context"
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xconfig"

	"go.opentelemetry.io/otel"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
)

func TestXTraceConfig(t *testing.T) {
	PatchConvey("TestXTraceConfig-configMergeDefault-Nil", t, func() {
		c := configMergeDefault(nil)
		So(*c.Enable, ShouldBeTrue)
		So(c.Console, ShouldBeFalse)
	})

	PatchConvey("TestXTraceConfig-configMergeDefault-Exist", t, func() {
		enable := false
		c := configMergeDefault(&Config{Enable: &enable, Console: true})
		So(*c.Enable, ShouldBeFalse)
		So(c.Console, ShouldBeTrue)
	})
}

func TestEnableTrace(t *testing.T) {
	PatchConvey("TestEnableTrace-default", t, func() {
		Mock(xconfig.GetString).Return("").Build()
		So(EnableTrace(), ShouldBeTrue)
	})

	PatchConvey("TestEnableTrace-false", t, func() {
		Mock(xconfig.GetString).Return(" False ").Build()
		So(EnableTrace(), ShouldBeFalse)
	})
}

func TestInitXTraceByConfig(t *testing.T) {
	PatchConvey("TestInitXTraceByConfig", t, func() {
		defer func() { _ = shutdownXTrace() }()

		err := initXTraceByConfig(configMergeDefault(&Config{ForwardHeaders: []string{"X-Request-Id"}}), "recipe.analyzer", "v1")
		So(err, ShouldBeNil)

		ctx, span := Start(context.Background(), "xactor.dispatch nutrition-analyzer")
		So(span.SpanContext().IsValid(), ShouldBeTrue)
		span.End()

		carrier := mapCarrier{}
		otel.GetTextMapPropagator().Inject(ctx, carrier)
		So(carrier["traceparent"], ShouldNotBeEmpty)
		So(carrier["b3"], ShouldNotBeEmpty)
	})
}

func TestShutdownXTraceIdempotent(t *testing.T) {
	PatchConvey("TestShutdownXTraceIdempotent", t, func() {
		calls := 0
		shutdownFunc = func(context.Context) error {
			calls++
			return nil
		}
		So(shutdownXTrace(), ShouldBeNil)
		So(shutdownXTrace(), ShouldBeNil)
		So(calls, ShouldEqual, 1)
	})
}

func TestSetShutdownTimeout(t *testing.T) {
	PatchConvey("TestSetShutdownTimeout", t, func() {
		original := defaultShutdownTimeout
		defer func() { defaultShutdownTimeout = original }()

		SetShutdownTimeout(10 * time.Second)
		So(defaultShutdownTimeout, ShouldEqual, 10*time.Second)
		SetShutdownTimeout(-1)
		So(defaultShutdownTimeout, ShouldEqual, 10*time.Second)
	})
}
