// Package xmetric 基于 prometheus 的 dispatch 与 pipeline 指标
package xmetric

import (
	"context"
	"net/http"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xpipeline"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// Collector 同时实现 xactor.DispatchMonitor 与 xpipeline.Monitor
type Collector struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	pipelineTotal    *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	stageDuration    *prometheus.HistogramVec
}

var (
	_ xactor.DispatchMonitor = (*Collector)(nil)
	_ xpipeline.Monitor      = (*Collector)(nil)
)

// New 创建并注册指标，重复注册返回错误
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xactor_dispatch_total",
			Help:      "Total number of messages dispatched to actors.",
		}, []string{"actor", "type", "status"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "xactor_dispatch_duration_seconds",
			Help:      "Actor message handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"actor"}),
		pipelineTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xpipeline_runs_total",
			Help:      "Total number of pipeline runs.",
		}, []string{"pipeline", "status"}),
		pipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "xpipeline_duration_seconds",
			Help:      "Pipeline run latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pipeline"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "xpipeline_stage_duration_seconds",
			Help:      "Pipeline stage latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pipeline", "stage", "status"}),
	}

	for _, col := range []prometheus.Collector{c.dispatchTotal, c.dispatchDuration, c.pipelineTotal, c.pipelineDuration, c.stageDuration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) OnDispatchDone(_ context.Context, e *xactor.DispatchEvent) {
	c.dispatchTotal.WithLabelValues(e.ActorID, string(e.MessageType), status(e.Err)).Inc()
	c.dispatchDuration.WithLabelValues(e.ActorID).Observe(e.Duration.Seconds())
}

func (c *Collector) OnStageDone(_ context.Context, e *xpipeline.StageEvent) {
	c.stageDuration.WithLabelValues(e.PipelineName, e.StageName, status(e.Err)).Observe(e.Duration.Seconds())
}

func (c *Collector) OnPipelineDone(_ context.Context, e *xpipeline.PipelineEvent) {
	c.pipelineTotal.WithLabelValues(e.PipelineName, status(e.Err)).Inc()
	c.pipelineDuration.WithLabelValues(e.PipelineName).Observe(e.Duration.Seconds())
}

func status(err error) string {
	if err != nil {
		return statusFailed
	}
	return statusSuccess
}

// Handler 暴露 gatherer 中的指标
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
