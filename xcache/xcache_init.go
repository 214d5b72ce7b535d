// Package xcache 本地缓存，支持单个或多个命名缓存配置
package xcache

import (
	"sync"

	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xutil"
)

const defaultCacheName = "__default_cache__"

var (
	cacheMap = make(map[string]*Cache)
	cacheMu  sync.RWMutex
)

func init() {
	xhook.BeforeStart(initXCache, xhook.Order(10))
	xhook.BeforeStop(closeXCache)
}

// C 获取缓存实例，name 为空时返回默认缓存，未配置时返回 nil
func C(name ...string) *Cache {
	n := defaultCacheName
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	cacheMu.RLock()
	defer cacheMu.RUnlock()
	return cacheMap[n]
}

func initXCache() error {
	if !xconfig.ContainKey(XCacheConfigKey) {
		xutil.InfoIfEnableDebug("XActor xcache config key [%s] not exists, skip", XCacheConfigKey)
		return nil
	}

	var configs []*Config
	if xutil.IsSlice(xconfig.GetConfig(XCacheConfigKey)) {
		if err := xconfig.UnmarshalConfig(XCacheConfigKey, &configs); err != nil {
			return xerror.New("xcache", "init", err)
		}
	} else {
		c := &Config{}
		if err := xconfig.UnmarshalConfig(XCacheConfigKey, c); err != nil {
			return xerror.New("xcache", "init", err)
		}
		configs = append(configs, c)
	}
	xutil.InfoIfEnableDebug("XActor init xcache got config: %s", xutil.ToJsonString(configs))
	return initByConfigs(configs)
}

// initByConfigs 第一个缓存同时作为默认缓存；多个配置时 Name 必填
func initByConfigs(configs []*Config) error {
	for idx, c := range configs {
		if len(configs) > 1 && c.Name == "" {
			return xerror.Newf("xcache", "init", "multi config XCache.Name can not be empty, index=[%d]", idx)
		}
		cache, err := New(c)
		if err != nil {
			return err
		}
		cacheMu.Lock()
		if c.Name != "" {
			cacheMap[c.Name] = cache
		}
		if idx == 0 {
			cacheMap[defaultCacheName] = cache
		}
		cacheMu.Unlock()
	}
	return nil
}

func closeXCache() error {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	closed := make(map[*Cache]struct{})
	for _, cache := range cacheMap {
		if _, ok := closed[cache]; ok {
			continue
		}
		closed[cache] = struct{}{}
		cache.Close()
	}
	clear(cacheMap)
	return nil
}
