package xmetric

const XMetricConfigKey = "XMetric"

type Config struct {
	// Enable 是否采集 actor/pipeline 指标
	// optional default true
	Enable *bool `mapstructure:"Enable"`

	// Namespace 指标名前缀
	// optional default ""
	Namespace string `mapstructure:"Namespace"`

	// Path 指标暴露路径
	// optional default "/metrics"
	Path string `mapstructure:"Path"`
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Enable == nil {
		enable := true
		c.Enable = &enable
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
	return c
}
