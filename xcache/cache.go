package xcache

import (
	"time"

	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/dgraph-io/ristretto"
)

// Cache 基于 ristretto 的本地缓存
type Cache struct {
	raw        *ristretto.Cache
	defaultTTL time.Duration
}

// New 按配置创建缓存，c 为 nil 时使用默认配置
func New(c *Config) (*Cache, error) {
	c = configMergeDefault(c)
	raw, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: c.NumCounters,
		MaxCost:     c.MaxCost,
		BufferItems: c.BufferItems,
	})
	if err != nil {
		return nil, xerror.Newf("xcache", "new", "ristretto.NewCache failed, err=[%w]", err)
	}
	return &Cache{raw: raw, defaultTTL: xutil.ToDuration(c.DefaultTTL)}, nil
}

func (c *Cache) Get(key string) (any, bool) {
	return c.raw.Get(key)
}

// Set 使用默认 TTL，cost=1
func (c *Cache) Set(key string, value any) bool {
	return c.raw.SetWithTTL(key, value, 1, c.defaultTTL)
}

func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) bool {
	return c.raw.SetWithTTL(key, value, 1, ttl)
}

func (c *Cache) Del(key string) {
	c.raw.Del(key)
}

func (c *Cache) Clear() {
	c.raw.Clear()
}

// Wait 等待缓冲中的写入生效，ristretto 的 Set 是异步的
func (c *Cache) Wait() {
	c.raw.Wait()
}

func (c *Cache) Close() {
	c.raw.Close()
}
