package xhook

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xerror"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
)

func resetHooks() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	beforeStartHooks = beforeStartHooks[:0]
	beforeStopHooks = beforeStopHooks[:0]
	registeredFuncs = make(map[string]struct{})
	maxHookNum = 1000
}

func MyIntFunc1() error {
	return nil
}

func PanicFunc() error {
	panic("for test")
}

func TestGetInvokeFuncFullName(t *testing.T) {
	PatchConvey("TestGetInvokeFuncFullName", t, func() {
		name := getInvokeFuncFullName(MyIntFunc1)
		So(strings.Contains(name, "xhook_test.go"), ShouldBeTrue)
		So(strings.Contains(name, "MyIntFunc1"), ShouldBeTrue)
	})
}

func TestSafeInvokeHook(t *testing.T) {
	PatchConvey("TestSafeInvokeHook", t, func() {
		err := safeInvokeHook(PanicFunc)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldEqual, "panic occurred, for test")
	})
}

func TestXHookBeforeStart(t *testing.T) {
	PatchConvey("TestXHookBeforeStart-Panic", t, func() {
		resetHooks()
		defer resetHooks()

		var h HookFunc
		So(func() { BeforeStart(h) }, ShouldPanicWith, "XActor BeforeStart hook can not be nil")

		maxHookNum = 1
		BeforeStart(func() error { return nil })
		So(func() { BeforeStart(func() error { return errors.New("x") }) }, ShouldPanicWith, "XActor BeforeStart hook can not be more than 1")
	})

	PatchConvey("TestXHookBeforeStart-Sort", t, func() {
		resetHooks()
		defer resetHooks()

		order := make([]string, 0)
		BeforeStart(func() error { order = append(order, "h1"); return nil }, Order(1))
		BeforeStart(func() error { order = append(order, "h3"); return nil }, Order(3))
		BeforeStart(func() error { order = append(order, "h2"); return nil }, Order(2))

		So(InvokeBeforeStartHook(), ShouldBeNil)
		So(order, ShouldResemble, []string{"h1", "h2", "h3"})
	})

	PatchConvey("TestXHookBeforeStart-Duplicate", t, func() {
		resetHooks()
		defer resetHooks()

		BeforeStart(MyIntFunc1)
		BeforeStart(MyIntFunc1)
		So(len(beforeStartHooks), ShouldEqual, 1)
	})
}

func TestInvokeBeforeStartHook(t *testing.T) {
	PatchConvey("TestInvokeBeforeStartHook-MustSuccess", t, func() {
		resetHooks()
		defer resetHooks()

		called := false
		BeforeStart(func() error { return errors.New("boom") }, Order(1))
		BeforeStart(func() error { called = true; return nil }, Order(2))

		err := InvokeBeforeStartHook()
		So(err, ShouldNotBeNil)
		So(xerror.Is(err, "xhook"), ShouldBeTrue)
		So(called, ShouldBeFalse)
	})

	PatchConvey("TestInvokeBeforeStartHook-Continue", t, func() {
		resetHooks()
		defer resetHooks()

		called := false
		BeforeStart(func() error { return errors.New("boom") }, Order(1), MustInvokeSuccess(false))
		BeforeStart(func() error { called = true; return nil }, Order(2))

		So(InvokeBeforeStartHook(), ShouldBeNil)
		So(called, ShouldBeTrue)
	})

	PatchConvey("TestInvokeBeforeStartHook-Timeout", t, func() {
		resetHooks()
		defer resetHooks()

		BeforeStart(func() error { time.Sleep(200 * time.Millisecond); return nil }, Timeout(10*time.Millisecond))
		err := InvokeBeforeStartHook()
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "hook timeout")
	})
}

func TestInvokeBeforeStopHook(t *testing.T) {
	PatchConvey("TestInvokeBeforeStopHook-Empty", t, func() {
		resetHooks()
		So(InvokeBeforeStopHook(), ShouldBeNil)
	})

	PatchConvey("TestInvokeBeforeStopHook-CollectErrors", t, func() {
		resetHooks()
		defer resetHooks()

		called := false
		BeforeStop(func() error { return errors.New("close a") }, Order(1))
		BeforeStop(PanicFunc, Order(2))
		BeforeStop(func() error { called = true; return nil }, Order(3))

		err := InvokeBeforeStopHook()
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "close a")
		So(err.Error(), ShouldContainSubstring, "panic occurred")
		So(called, ShouldBeTrue)
	})
}
