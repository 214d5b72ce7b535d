package xtrace

import "github.com/xiaoshicae/xactor/xutil"

const (
	XTraceConfigKey = "XTrace"
)

type Config struct {
	// Enable 是否开启 trace，需要明确配置 false 才会关闭
	// optional default true
	Enable *bool `mapstructure:"Enable"`

	// Console span 是否打印到控制台
	// optional default false
	Console bool `mapstructure:"Console"`

	// ForwardHeaders 需要沿调用链透传的 HTTP Header，如 X-Request-Id
	// optional default nil
	ForwardHeaders []string `mapstructure:"ForwardHeaders"`
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Enable == nil {
		c.Enable = xutil.ToPtr(true)
	}
	return c
}
