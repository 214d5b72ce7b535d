package xactor

import (
	"context"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xlog"
)

// DispatchEvent 一次 dispatch 完成事件
type DispatchEvent struct {
	MessageID   string
	MessageType MessageType
	Sender      string
	ActorID     string
	Err         error
	Duration    time.Duration
}

// DispatchMonitor 观测 dispatch，回调可能并发触发
type DispatchMonitor interface {
	OnDispatchDone(ctx context.Context, event *DispatchEvent)
}

type defaultMonitor struct{}

func (d *defaultMonitor) OnDispatchDone(ctx context.Context, e *DispatchEvent) {
	if e.Err != nil {
		xlog.Warn(ctx, "[xactor] sender=[%s] actor=[%s] duration=[%s] status=[failed] err=[%v]",
			e.Sender, e.ActorID, e.Duration, e.Err, xlog.KV("message_id", e.MessageID))
		return
	}
	xlog.Debug(ctx, "[xactor] sender=[%s] actor=[%s] duration=[%s] status=[success]",
		e.Sender, e.ActorID, e.Duration, xlog.KV("message_id", e.MessageID))
}

// MultiMonitor 依次通知多个 monitor
type MultiMonitor []DispatchMonitor

func (m MultiMonitor) OnDispatchDone(ctx context.Context, e *DispatchEvent) {
	for _, mon := range m {
		mon.OnDispatchDone(ctx, e)
	}
}

var (
	defaultMonitorInstance DispatchMonitor = &defaultMonitor{}
	monitorMu              sync.RWMutex
)

// SetDefaultMonitor 替换全局默认 monitor
func SetDefaultMonitor(m DispatchMonitor) {
	monitorMu.Lock()
	defer monitorMu.Unlock()
	defaultMonitorInstance = m
}

func GetDefaultMonitor() DispatchMonitor {
	monitorMu.RLock()
	defer monitorMu.RUnlock()
	return defaultMonitorInstance
}
