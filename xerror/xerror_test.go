package xerror

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
)

func TestError_Error(t *testing.T) {
	PatchConvey("TestError_Error", t, func() {
		PatchConvey("包含原始错误", func() {
			err := New("xconfig", "init", errors.New("file not found"))
			So(err.Error(), ShouldEqual, "XActor xconfig init failed, err=[file not found]")
		})

		PatchConvey("无原始错误", func() {
			err := New("xpipeline", "build", nil)
			So(err.Error(), ShouldEqual, "XActor xpipeline build failed")
		})
	})
}

func TestError_Unwrap(t *testing.T) {
	PatchConvey("TestError_Unwrap", t, func() {
		inner := errors.New("inner error")
		So(errors.Is(New("xlog", "init", inner), inner), ShouldBeTrue)
		So(errors.Is(Newf("xlog", "init", "wrap: %w", inner), inner), ShouldBeTrue)
	})
}

func TestNewf(t *testing.T) {
	PatchConvey("TestNewf", t, func() {
		err := Newf("xactor", "add", "actor duplicated, id=[%s]", "nutrition-analyzer")
		So(err.Module, ShouldEqual, "xactor")
		So(err.Op, ShouldEqual, "add")
		So(err.Err.Error(), ShouldEqual, "actor duplicated, id=[nutrition-analyzer]")
	})
}

func TestIs(t *testing.T) {
	PatchConvey("TestIs", t, func() {
		PatchConvey("匹配模块名", func() {
			err := New("xconfig", "init", errors.New("parse error"))
			So(Is(err, "xconfig"), ShouldBeTrue)
			So(Is(err, "xlog"), ShouldBeFalse)
		})

		PatchConvey("wrapped 错误链", func() {
			wrapped := fmt.Errorf("outer: %w", New("xtrace", "init", errors.New("exporter failed")))
			So(Is(wrapped, "xtrace"), ShouldBeTrue)
			So(Is(wrapped, "xconfig"), ShouldBeFalse)
		})

		PatchConvey("非 Error", func() {
			So(Is(errors.New("plain error"), "xconfig"), ShouldBeFalse)
			So(Is(errors.New("plain error"), ""), ShouldBeFalse)
		})
	})
}

func TestModule(t *testing.T) {
	PatchConvey("TestModule", t, func() {
		So(Module(New("xcache", "close", nil)), ShouldEqual, "xcache")
		So(Module(errors.New("plain")), ShouldEqual, "")
	})
}
