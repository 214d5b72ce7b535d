package xpipeline

import (
	"sync"

	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xutil"
)

// XPipelineConfigKey 配置 key
const XPipelineConfigKey = "XPipeline"

const defaultTimeout = "30s"

type Config struct {
	// DisableMonitor 是否关闭监控
	// optional default false
	DisableMonitor bool `mapstructure:"DisableMonitor"`

	// Timeout 调用方等待 pipeline 的默认超时，超时只放弃等待，不会中断 actor
	// optional default "30s"
	Timeout string `mapstructure:"Timeout"`

	// Definitions 配置化的 pipeline 定义，与代码内同名定义冲突时以配置为准
	// optional default nil
	Definitions []*Definition `mapstructure:"Definitions"`
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	c.Timeout = xutil.GetOrDefault(c.Timeout, defaultTimeout)
	return c
}

var (
	cachedConfig     *Config
	cachedConfigOnce sync.Once
)

// GetConfig 获取 xpipeline 配置，首次调用后缓存
func GetConfig() *Config {
	cachedConfigOnce.Do(func() {
		c := &Config{}
		if err := xconfig.UnmarshalConfig(XPipelineConfigKey, c); err != nil {
			c = nil
		}
		cachedConfig = configMergeDefault(c)
	})
	return cachedConfig
}
