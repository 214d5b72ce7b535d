package xconfig

import (
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xutil"

	"github.com/spf13/viper"
)

const (
	serverNameConfigKey    = ServerConfigKey + ".Name"
	serverVersionConfigKey = ServerConfigKey + ".Version"

	defaultServerName    = "xactor.unknown"
	defaultServerVersion = "v0.0.1"
)

var (
	vip   *viper.Viper
	vipMu sync.RWMutex
)

// UnmarshalConfig 将 key 对应的配置解析到 conf（必须为指针）
func UnmarshalConfig(key string, conf any) error {
	if key == "" {
		return errors.New("param key is empty")
	}
	if conf == nil || reflect.TypeOf(conf).Kind() != reflect.Ptr {
		return errors.New("param conf must be a non-nil ptr")
	}
	return getViperConfig().UnmarshalKey(key, conf)
}

func GetConfig(key string) any {
	return getViperConfig().Get(key)
}

func ContainKey(key string) bool {
	return getViperConfig().IsSet(key)
}

func GetString(key string) string {
	return getViperConfig().GetString(key)
}

func GetBool(key string) bool {
	return getViperConfig().GetBool(key)
}

func GetInt(key string) int {
	return getViperConfig().GetInt(key)
}

func GetFloat64(key string) float64 {
	return getViperConfig().GetFloat64(key)
}

// GetDuration 兼容 "1d" 写法
func GetDuration(key string) time.Duration {
	return xutil.ToDuration(getViperConfig().Get(key))
}

func GetStringSlice(key string) []string {
	return getViperConfig().GetStringSlice(key)
}

// GetServerName 获取Server.Name，未配置返回默认值
func GetServerName() string {
	return xutil.GetOrDefault(GetString(serverNameConfigKey), defaultServerName)
}

// GetServerVersion 获取Server.Version，未配置返回默认值
func GetServerVersion() string {
	return xutil.GetOrDefault(GetString(serverVersionConfigKey), defaultServerVersion)
}

// SetViper 直接替换全局配置，主要用于测试或由调用方自行构造配置
func SetViper(vp *viper.Viper) {
	vipMu.Lock()
	vip = vp
	vipMu.Unlock()
}

func getViperConfig() *viper.Viper {
	vipMu.RLock()
	defer vipMu.RUnlock()
	if vip == nil {
		return viper.New()
	}
	return vip
}
