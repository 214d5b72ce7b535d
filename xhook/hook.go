// Package xhook 管理模块初始化与关闭的生命周期 hook
package xhook

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xutil"

	"golang.org/x/exp/slices"
)

var (
	defaultStopTimeout = 60 * time.Second
	maxHookNum         = 1000
)

var (
	beforeStartHooks = make([]hook, 0)
	beforeStopHooks  = make([]hook, 0)
	registeredFuncs  = make(map[string]struct{}) // hookType+函数指针
	hooksMu          sync.RWMutex
)

// HookFunc Hook 函数类型定义
type HookFunc func() error

type hook struct {
	HookFunc HookFunc
	Options  *options
}

// SetStopTimeout 设置 BeforeStop hooks 的整体超时时间
func SetStopTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	hooksMu.Lock()
	defaultStopTimeout = timeout
	hooksMu.Unlock()
}

// BeforeStart 注册 BeforeStart Hook
func BeforeStart(f HookFunc, opts ...Option) {
	registerHook(f, opts, &beforeStartHooks, "BeforeStart")
}

// BeforeStop 注册 BeforeStop Hook
func BeforeStop(f HookFunc, opts ...Option) {
	registerHook(f, opts, &beforeStopHooks, "BeforeStop")
}

func registerHook(f HookFunc, opts []Option, hooks *[]hook, hookType string) {
	if f == nil {
		panic(fmt.Sprintf("XActor %s hook can not be nil", hookType))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	hooksMu.Lock()
	defer hooksMu.Unlock()

	if len(*hooks) >= maxHookNum {
		panic(fmt.Sprintf("XActor %s hook can not be more than %d", hookType, maxHookNum))
	}

	key := hookType + ":" + strconv.FormatUint(uint64(reflect.ValueOf(f).Pointer()), 10)
	if _, ok := registeredFuncs[key]; ok {
		xutil.WarnIfEnableDebug("XActor %s hook duplicate registration detected, skipping", hookType)
		return
	}
	registeredFuncs[key] = struct{}{}

	*hooks = append(*hooks, hook{HookFunc: f, Options: o})
	slices.SortStableFunc(*hooks, compareHookOrder)
}

// InvokeBeforeStartHook 按顺序执行所有 BeforeStart Hook
func InvokeBeforeStartHook() error {
	for _, h := range snapshot(&beforeStartHooks) {
		funcName := getInvokeFuncFullName(h.HookFunc)
		err := invokeHookWithTimeout(h, h.Options.Timeout)
		if err == nil {
			xutil.InfoIfEnableDebug("XActor invoke before start hook success, func=[%v]", funcName)
			continue
		}
		if h.Options.MustInvokeSuccess {
			xutil.ErrorIfEnableDebug("XActor invoke before start hook failed, func=[%v], err=[%v]", funcName, err)
			return xerror.Newf("xhook", "BeforeStart", "func=[%v], err=[%w]", funcName, err)
		}
		xutil.WarnIfEnableDebug("XActor invoke before start hook failed, MustInvokeSuccess=false, continue, func=[%v], err=[%v]", funcName, err)
	}
	return nil
}

// InvokeBeforeStopHook 执行所有 BeforeStop Hook，单个失败不影响后续执行
func InvokeBeforeStopHook() error {
	hooks := snapshot(&beforeStopHooks)
	if len(hooks) == 0 {
		return nil
	}

	hooksMu.RLock()
	stopTimeout := defaultStopTimeout
	hooksMu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	errMsgList := make([]string, 0)
	for i, h := range hooks {
		remaining := time.Until(deadlineOf(ctx))
		if remaining <= 0 {
			return xerror.Newf("xhook", "BeforeStop", "interrupted due to timeout, completed %d/%d hooks", i, len(hooks))
		}

		funcName := getInvokeFuncFullName(h.HookFunc)
		if err := invokeHookWithTimeout(h, min(h.Options.Timeout, remaining)); err != nil {
			xutil.ErrorIfEnableDebug("XActor invoke before stop hook failed, func=[%v], err=[%v]", funcName, err)
			errMsgList = append(errMsgList, fmt.Sprintf("func=[%v], err=[%v]", funcName, err))
			continue
		}
		xutil.InfoIfEnableDebug("XActor invoke before stop hook success, func=[%v]", funcName)
	}

	if len(errMsgList) > 0 {
		return xerror.Newf("xhook", "BeforeStop", "%s", strings.Join(errMsgList, "; "))
	}
	return nil
}

func snapshot(hooks *[]hook) []hook {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return slices.Clone(*hooks)
}

func deadlineOf(ctx context.Context) time.Time {
	d, _ := ctx.Deadline()
	return d
}

// invokeHookWithTimeout 超时仅代表放弃等待，不会取消正在运行的 Hook
func invokeHookWithTimeout(h hook, timeout time.Duration) error {
	if timeout <= 0 {
		return safeInvokeHook(h.HookFunc)
	}

	ch := make(chan error, 1)
	go func() {
		ch <- safeInvokeHook(h.HookFunc)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-ch:
		return err
	case <-timer.C:
		return xerror.Newf("xhook", "invokeHook", "hook timeout after %v, func=[%v]", timeout, getInvokeFuncFullName(h.HookFunc))
	}
}

func safeInvokeHook(h HookFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred, %v", r)
		}
	}()
	return h()
}

func compareHookOrder(a, b hook) int {
	return a.Options.Order - b.Options.Order
}

func getInvokeFuncFullName(hf HookFunc) string {
	file, line, name := xutil.GetFuncInfo(hf)
	return fmt.Sprintf("%s:%d %s()", file, line, name)
}
