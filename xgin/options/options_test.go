package options

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOptions(t *testing.T) {
	Convey("TestDefaultOptions", t, func() {
		o := DefaultOptions()
		So(o.EnableLogMiddleware, ShouldBeTrue)
		So(o.EnableTraceMiddleware, ShouldBeTrue)
		So(o.EnableMetricRoute, ShouldBeTrue)
		So(o.LogSkipPaths, ShouldBeEmpty)
	})

	Convey("TestApplyOptions", t, func() {
		o := DefaultOptions()
		for _, opt := range []Option{
			EnableLogMiddleware(false),
			EnableTraceMiddleware(false),
			EnableMetricRoute(false),
			LogSkipPaths("/health", "/ready"),
			LogSkipPaths("/debug/"),
		} {
			opt(o)
		}
		So(o.EnableLogMiddleware, ShouldBeFalse)
		So(o.EnableTraceMiddleware, ShouldBeFalse)
		So(o.EnableMetricRoute, ShouldBeFalse)
		So(o.LogSkipPaths, ShouldResemble, []string{"/health", "/ready", "/debug/"})
	})

	Convey("TestSwaggerOptions", t, func() {
		o := DefaultSwaggerOptions()
		So(o.UrlPrefix, ShouldEqual, "")
		WithSwaggerUrlPrefix("/api/v1")(o)
		So(o.UrlPrefix, ShouldEqual, "/api/v1")
	})
}
