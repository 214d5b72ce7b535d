package xmetric

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/bytedance/mockey"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	c "github.com/smartystreets/goconvey/convey"
)

func TestCollector(t *testing.T) {
	mockey.PatchConvey("TestCollector", t, func() {
		reg := prometheus.NewRegistry()
		col, err := New(reg, "test")
		c.So(err, c.ShouldBeNil)

		_, err = New(reg, "test")
		c.So(err, c.ShouldNotBeNil)

		ctx := context.Background()
		col.OnDispatchDone(ctx, &xactor.DispatchEvent{ActorID: "a", MessageType: xactor.MessageTypeProcess, Duration: time.Millisecond})
		col.OnDispatchDone(ctx, &xactor.DispatchEvent{ActorID: "a", MessageType: xactor.MessageTypeProcess, Err: errors.New("x")})
		col.OnStageDone(ctx, &xpipeline.StageEvent{PipelineName: "p", StageName: "s", ActorID: "a"})
		col.OnPipelineDone(ctx, &xpipeline.PipelineEvent{PipelineName: "p", Duration: time.Second})

		c.So(testutil.ToFloat64(col.dispatchTotal.WithLabelValues("a", "PROCESS", statusSuccess)), c.ShouldEqual, 1)
		c.So(testutil.ToFloat64(col.dispatchTotal.WithLabelValues("a", "PROCESS", statusFailed)), c.ShouldEqual, 1)
		c.So(testutil.ToFloat64(col.pipelineTotal.WithLabelValues("p", statusSuccess)), c.ShouldEqual, 1)

		rec := httptest.NewRecorder()
		Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		c.So(rec.Code, c.ShouldEqual, http.StatusOK)
		body := rec.Body.String()
		c.So(strings.Contains(body, "test_xactor_dispatch_total"), c.ShouldBeTrue)
		c.So(strings.Contains(body, "test_xpipeline_stage_duration_seconds"), c.ShouldBeTrue)
	})
}

func TestCollector_WithPipeline(t *testing.T) {
	mockey.PatchConvey("TestCollector_WithPipeline", t, func() {
		reg := prometheus.NewRegistry()
		col, err := New(reg, "")
		c.So(err, c.ShouldBeNil)

		s := xactor.NewSystem(xactor.WithMonitor(col), xactor.WithActors(
			xactor.NewFuncActor("echo", "", func(_ context.Context, _ *xactor.Message) (any, error) {
				return map[string]any{"ok": true}, nil
			}),
		))
		p := xpipeline.MustNew("echo", s, xpipeline.NewStage("", "echo")).WithMonitor(col)
		_, err = p.Process(context.Background(), xpipeline.Data{})
		c.So(err, c.ShouldBeNil)

		c.So(testutil.ToFloat64(col.dispatchTotal.WithLabelValues("echo", "PROCESS", statusSuccess)), c.ShouldEqual, 1)
		c.So(testutil.ToFloat64(col.pipelineTotal.WithLabelValues("echo", statusSuccess)), c.ShouldEqual, 1)
	})
}

func TestInit(t *testing.T) {
	mockey.PatchConvey("TestInit-Disabled", t, func() {
		mockey.MockValue(&defaultCollector).To((*Collector)(nil))
		err := initByConfig(&Config{Enable: xutil.ToPtr(false), Path: "/m"}, prometheus.NewRegistry())
		c.So(err, c.ShouldBeNil)
		c.So(Enabled(), c.ShouldBeFalse)
		c.So(Path(), c.ShouldEqual, "/m")
	})

	mockey.PatchConvey("TestInit-Enabled", t, func() {
		mockey.MockValue(&defaultCollector).To((*Collector)(nil))
		mockey.Mock(xactor.SetDefaultMonitor).To(func(xactor.DispatchMonitor) {}).Build()
		mockey.Mock(xpipeline.SetDefaultMonitor).To(func(xpipeline.Monitor) {}).Build()

		reg := prometheus.NewRegistry()
		c.So(initByConfig(configMergeDefault(nil), reg), c.ShouldBeNil)
		c.So(Enabled(), c.ShouldBeTrue)
		c.So(Path(), c.ShouldEqual, "/metrics")
		// 重复初始化不重复注册
		c.So(initByConfig(configMergeDefault(nil), reg), c.ShouldBeNil)
	})

	mockey.PatchConvey("TestInit-ConfigError", t, func() {
		mockey.Mock(xconfig.UnmarshalConfig).Return(errors.New("bad")).Build()
		c.So(initXMetric(), c.ShouldNotBeNil)
	})
}
