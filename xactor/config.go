package xactor

import (
	"sync"

	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xutil"
)

const XActorConfigKey = "XActor"

const defaultCacheTTL = "5m"

type Config struct {
	// DisableMonitor 是否关闭 dispatch 监控
	// optional default false
	DisableMonitor bool `mapstructure:"DisableMonitor"`

	// Cache actor 结果缓存
	// optional default nil
	Cache *CacheConfig `mapstructure:"Cache"`
}

type CacheConfig struct {
	// Enable 是否开启
	// optional default false
	Enable bool `mapstructure:"Enable"`

	// Name 使用的 xcache 命名缓存，为空时使用默认缓存
	// optional default ""
	Name string `mapstructure:"Name"`

	// TTL 结果缓存时长
	// optional default "5m"
	TTL string `mapstructure:"TTL"`

	// Actors 需要缓存的 actor id，为空时缓存所有 remote actor
	// optional default nil
	Actors []string `mapstructure:"Actors"`
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	c.Cache.TTL = xutil.GetOrDefault(c.Cache.TTL, defaultCacheTTL)
	return c
}

var (
	cachedConfig     *Config
	cachedConfigOnce sync.Once
)

// GetConfig 获取 XActor 配置，首次调用后缓存
func GetConfig() *Config {
	cachedConfigOnce.Do(func() {
		c := &Config{}
		if err := xconfig.UnmarshalConfig(XActorConfigKey, c); err != nil {
			c = nil
		}
		cachedConfig = configMergeDefault(c)
	})
	return cachedConfig
}
