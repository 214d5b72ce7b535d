package xrecipe

import (
	"sync"

	"github.com/xiaoshicae/xactor/xconfig"
)

const XRecipeConfigKey = "XRecipe"

type Config struct {
	// Remote 远程分析服务，配置后替换同 id 的本地 actor
	// optional default nil
	Remote []*RemoteConfig `mapstructure:"Remote"`
}

type RemoteConfig struct {
	// ID 对应的 actor id，如 nutrition-analyzer
	// required
	ID string `mapstructure:"ID"`

	// Name actor 展示名称
	// optional default ID
	Name string `mapstructure:"Name"`

	// Endpoint 分析接口地址，接收 POST json
	// required
	Endpoint string `mapstructure:"Endpoint"`

	// Attempts 最多请求次数
	// optional default 1
	Attempts int `mapstructure:"Attempts"`

	// RetryInterval 重试间隔
	// optional default "100ms"
	RetryInterval string `mapstructure:"RetryInterval"`
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	for _, r := range c.Remote {
		if r == nil {
			continue
		}
		if r.Name == "" {
			r.Name = r.ID
		}
		if r.Attempts <= 0 {
			r.Attempts = 1
		}
		if r.RetryInterval == "" {
			r.RetryInterval = "100ms"
		}
	}
	return c
}

var (
	cachedConfig     *Config
	cachedConfigOnce sync.Once
)

func GetConfig() *Config {
	cachedConfigOnce.Do(func() {
		c := &Config{}
		if err := xconfig.UnmarshalConfig(XRecipeConfigKey, c); err != nil {
			c = nil
		}
		cachedConfig = configMergeDefault(c)
	})
	return cachedConfig
}
