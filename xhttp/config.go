package xhttp

const XHttpConfigKey = "XHttp"

type Config struct {
	// Timeout 请求整体超时
	// optional default "60s"
	Timeout string `mapstructure:"Timeout"`

	// DialTimeout 建立连接超时
	// optional default "30s"
	DialTimeout string `mapstructure:"DialTimeout"`

	// MaxIdleConns 最大空闲连接数
	// optional default 100
	MaxIdleConns int `mapstructure:"MaxIdleConns"`

	// MaxIdleConnsPerHost 每个 host 最大空闲连接数
	// optional default 10
	MaxIdleConnsPerHost int `mapstructure:"MaxIdleConnsPerHost"`

	// IdleConnTimeout 空闲连接超时
	// optional default "90s"
	IdleConnTimeout string `mapstructure:"IdleConnTimeout"`

	// RetryCount 重试次数
	// optional default 0
	RetryCount int `mapstructure:"RetryCount"`

	// RetryWaitTime 重试等待时间
	// optional default "100ms"
	RetryWaitTime string `mapstructure:"RetryWaitTime"`
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "30s"
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout == "" {
		c.IdleConnTimeout = "90s"
	}
	if c.RetryWaitTime == "" {
		c.RetryWaitTime = "100ms"
	}
	return c
}
