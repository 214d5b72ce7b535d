package xpipeline

import (
	"context"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xlog"
)

// StageEvent stage 执行完成事件
type StageEvent struct {
	PipelineName string
	StageName    string
	ActorID      string
	Err          error
	Duration     time.Duration
}

// PipelineEvent pipeline 执行完成事件
type PipelineEvent struct {
	PipelineName string
	Stages       int // 成功执行的 stage 数
	Err          error
	Duration     time.Duration
}

// Monitor 观测 pipeline 执行过程，多个 pipeline 并发运行时回调会并发触发
type Monitor interface {
	OnStageDone(ctx context.Context, event *StageEvent)
	OnPipelineDone(ctx context.Context, event *PipelineEvent)
}

// defaultMonitor 使用 xlog 打印
type defaultMonitor struct{}

func (d *defaultMonitor) OnStageDone(ctx context.Context, e *StageEvent) {
	if e.Err != nil {
		xlog.Warn(ctx, "[xpipeline] pipeline=[%s] stage=[%s] actor=[%s] duration=[%s] status=[failed] err=[%v]",
			e.PipelineName, e.StageName, e.ActorID, e.Duration, e.Err)
		return
	}
	xlog.Info(ctx, "[xpipeline] pipeline=[%s] stage=[%s] actor=[%s] duration=[%s] status=[success]",
		e.PipelineName, e.StageName, e.ActorID, e.Duration)
}

func (d *defaultMonitor) OnPipelineDone(ctx context.Context, e *PipelineEvent) {
	if e.Err != nil {
		xlog.Warn(ctx, "[xpipeline] pipeline=[%s] stages=[%d] duration=[%s] status=[failed] err=[%v]",
			e.PipelineName, e.Stages, e.Duration, e.Err)
		return
	}
	xlog.Info(ctx, "[xpipeline] pipeline=[%s] stages=[%d] duration=[%s] status=[success]",
		e.PipelineName, e.Stages, e.Duration)
}

var (
	defaultMonitorInstance Monitor = &defaultMonitor{}
	monitorMu              sync.RWMutex
)

// SetDefaultMonitor 替换全局默认 Monitor
func SetDefaultMonitor(m Monitor) {
	monitorMu.Lock()
	defer monitorMu.Unlock()
	defaultMonitorInstance = m
}

func GetDefaultMonitor() Monitor {
	monitorMu.RLock()
	defer monitorMu.RUnlock()
	return defaultMonitorInstance
}

// MultiMonitor 依次通知多个 Monitor
type MultiMonitor []Monitor

func (m MultiMonitor) OnStageDone(ctx context.Context, e *StageEvent) {
	for _, mon := range m {
		if mon != nil {
			mon.OnStageDone(ctx, e)
		}
	}
}

func (m MultiMonitor) OnPipelineDone(ctx context.Context, e *PipelineEvent) {
	for _, mon := range m {
		if mon != nil {
			mon.OnPipelineDone(ctx, e)
		}
	}
}
