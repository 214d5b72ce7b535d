package xmetric

import (
	"net/http"
	"sync"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	defaultCollector *Collector
	defaultConfig    = configMergeDefault(nil)
	defaultMu        sync.RWMutex
)

func init() {
	xhook.BeforeStart(initXMetric, xhook.Order(30))
}

func initXMetric() error {
	c := &Config{}
	if err := xconfig.UnmarshalConfig(XMetricConfigKey, c); err != nil {
		return xerror.New("xmetric", "init", err)
	}
	c = configMergeDefault(c)
	xutil.InfoIfEnableDebug("XActor initXMetric got config: %s", xutil.ToJsonString(c))
	return initByConfig(c, prometheus.DefaultRegisterer)
}

// initByConfig 注册指标，并追加到 xactor 与 xpipeline 的默认 monitor 之后
func initByConfig(c *Config, reg prometheus.Registerer) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultConfig = c
	if !*c.Enable {
		xutil.WarnIfEnableDebug("XActor xmetric is disabled")
		return nil
	}
	if defaultCollector != nil {
		return nil
	}

	col, err := New(reg, c.Namespace)
	if err != nil {
		return xerror.New("xmetric", "init", err)
	}
	defaultCollector = col

	xactor.SetDefaultMonitor(xactor.MultiMonitor{xactor.GetDefaultMonitor(), col})
	xpipeline.SetDefaultMonitor(xpipeline.MultiMonitor{xpipeline.GetDefaultMonitor(), col})
	return nil
}

// Enabled 是否已初始化并开启
func Enabled() bool {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCollector != nil
}

// Path 指标暴露路径
func Path() string {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultConfig.Path
}

// DefaultHandler 暴露 prometheus 默认 registry
func DefaultHandler() http.Handler {
	return Handler(prometheus.DefaultGatherer)
}
