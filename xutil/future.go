package xutil

import (
	"context"
	"time"
)

// Future 异步计算的结果
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Async 启动一个异步任务，fn 中的 panic 不做处理，由调用方保证
func Async[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Get 阻塞等待结果
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.val, f.err
}

// GetWithTimeout 等待结果，超时返回 context.DeadlineExceeded
// 注意：超时只是放弃等待，任务本身仍会继续执行直至返回
func (f *Future[T]) GetWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.val, f.err
	case <-timer.C:
		var zero T
		return zero, context.DeadlineExceeded
	}
}

// GetWithContext 等待结果，ctx 结束时返回 ctx.Err()，任务本身仍会继续执行
func (f *Future[T]) GetWithContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsDone 非阻塞检查是否已完成
func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
