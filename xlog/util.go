package xlog

import (
	"context"
	"maps"

	"github.com/sirupsen/logrus"
)

type ctxKVContainerKey struct{}

func Error(ctx context.Context, msg string, args ...any) {
	RawLog(ctx, logrus.ErrorLevel, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	RawLog(ctx, logrus.WarnLevel, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	RawLog(ctx, logrus.InfoLevel, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	RawLog(ctx, logrus.DebugLevel, msg, args...)
}

// RawLog args 中的 Option 作为字段，其余作为 msg 的格式化参数
func RawLog(ctx context.Context, level logrus.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}

	var fields logrus.Fields
	logArgs := args[:0:0]
	for _, arg := range args {
		opt, ok := arg.(Option)
		if !ok {
			logArgs = append(logArgs, arg)
			continue
		}
		o := &options{KV: make(map[string]any)}
		opt(o)
		if fields == nil {
			fields = make(logrus.Fields, len(o.KV))
		}
		maps.Copy(fields, o.KV)
	}

	entry := logrus.WithContext(ctx)
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	if len(logArgs) == 0 {
		entry.Log(level, msg)
		return
	}
	entry.Logf(level, msg, logArgs...)
}

// CtxWithKV 向ctx注入kv，之后使用该ctx记录的日志都会带上这些字段
// 每次调用都会生成新的map，不影响父ctx
func CtxWithKV(ctx context.Context, kvs map[string]any) context.Context {
	old := getXLogContainerFromCtx(ctx)
	merged := make(map[string]any, len(old)+len(kvs))
	maps.Copy(merged, old)
	maps.Copy(merged, kvs)
	return context.WithValue(ctx, ctxKVContainerKey{}, merged)
}

func getXLogContainerFromCtx(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	kv, _ := ctx.Value(ctxKVContainerKey{}).(map[string]any)
	return kv
}
