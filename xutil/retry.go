package xutil

import (
	"context"
	"time"
)

// Retry 最多执行 attempts 次 fn，成功立即返回，否则返回最后一次错误
// ctx 取消时停止重试
func Retry(ctx context.Context, fn func() error, attempts int, sleep time.Duration) (err error) {
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i+1 == attempts || sleep <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(sleep):
		}
	}
	return err
}
