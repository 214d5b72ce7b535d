package xserver

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xhook"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
)

type stubServer struct {
	runErr   error
	stopErr  error
	runPanic any
}

func (s stubServer) Run() error {
	if s.runPanic != nil {
		panic(s.runPanic)
	}
	return s.runErr
}

func (s stubServer) Stop() error {
	return s.stopErr
}

type panicStopServer struct{ stubServer }

func (panicStopServer) Stop() error {
	panic("stop panic")
}

func TestRun(t *testing.T) {
	PatchConvey("TestRun-JoinErrors", t, func() {
		Mock(xhook.InvokeBeforeStartHook).Return(nil).Build()
		Mock(runWithSever).Return(errors.New("for test")).Build()
		Mock(xhook.InvokeBeforeStopHook).Return(errors.New("for test 2")).Build()
		err := run(stubServer{})
		So(err.Error(), ShouldEqual, "for test\nfor test 2")
	})

	PatchConvey("TestRun-StartHookFailed", t, func() {
		Mock(xhook.InvokeBeforeStartHook).Return(errors.New("hook")).Build()
		stop := Mock(xhook.InvokeBeforeStopHook).Return(nil).Build()
		So(run(stubServer{}).Error(), ShouldEqual, "hook")
		So(stop.Times(), ShouldEqual, 0)
	})

	PatchConvey("TestR", t, func() {
		Mock(xhook.InvokeBeforeStartHook).Return(nil).Build()
		stop := Mock(xhook.InvokeBeforeStopHook).Return(nil).Build()
		So(R(), ShouldBeNil)
		So(stop.Times(), ShouldEqual, 0)
		So(Shutdown(), ShouldBeNil)
		So(stop.Times(), ShouldEqual, 1)
	})

	PatchConvey("TestRun-Success", t, func() {
		Mock(xhook.InvokeBeforeStartHook).Return(nil).Build()
		Mock(xhook.InvokeBeforeStopHook).Return(nil).Build()
		So(Run(stubServer{runErr: http.ErrServerClosed}), ShouldBeNil)
	})
}

func TestRunWithSever(t *testing.T) {
	PatchConvey("TestRunWithSever-NilServer", t, func() {
		err := runWithSever(nil)
		So(err.Error(), ShouldEqual, "XActor Run server failed, err=[panic occurred, runtime error: invalid memory address or nil pointer dereference]")
	})

	PatchConvey("TestRunWithSever-Panic", t, func() {
		err := runWithSever(stubServer{runPanic: "panic run"})
		So(err.Error(), ShouldEqual, "XActor Run server failed, err=[panic occurred, panic run]")
	})

	PatchConvey("TestRunWithSever-Err", t, func() {
		err := runWithSever(stubServer{runErr: errors.New("err run")})
		So(err.Error(), ShouldEqual, "XActor Run server failed, err=[err run]")
	})

	PatchConvey("TestRunWithSever-Exit", t, func() {
		So(runWithSever(stubServer{}), ShouldBeNil)
	})
}

func TestSafeInvokeServerStop(t *testing.T) {
	PatchConvey("TestSafeInvokeServerStop", t, func() {
		So(safeInvokeServerStop(panicStopServer{}).Error(), ShouldEqual, "panic occurred, stop panic")
		So(safeInvokeServerStop(stubServer{stopErr: errors.New("stop err")}).Error(), ShouldEqual, "stop err")
		So(safeInvokeServerStop(stubServer{}), ShouldBeNil)
	})
}

func TestBlockingServer(t *testing.T) {
	PatchConvey("TestBlockingServer-RunAndStop", t, func() {
		s := &blockingServer{}
		done := make(chan error, 1)
		go func() {
			done <- s.Run()
		}()
		time.Sleep(10 * time.Millisecond)

		So(s.Stop(), ShouldBeNil)
		select {
		case err := <-done:
			So(err, ShouldBeNil)
		case <-time.After(time.Second):
			t.Fatal("Run did not complete after Stop")
		}
		So(s.Stop(), ShouldBeNil)
	})

	PatchConvey("TestBlockingServer-StopBeforeRun", t, func() {
		s := &blockingServer{}
		So(s.Stop(), ShouldBeNil)

		done := make(chan error, 1)
		go func() {
			done <- s.Run()
		}()
		select {
		case err := <-done:
			So(err, ShouldBeNil)
		case <-time.After(time.Second):
			t.Fatal("Run did not complete after Stop")
		}
	})
}
