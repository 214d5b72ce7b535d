package xcache

import "time"

// TypedCache 类型安全的缓存视图，底层 cache 为 nil 时所有操作均为空操作
type TypedCache[V any] struct {
	cache *Cache
}

// Of 无参数时使用默认缓存，有参数时按名称获取
func Of[V any](name ...string) *TypedCache[V] {
	return &TypedCache[V]{cache: C(name...)}
}

// Typed 包装一个已有的 Cache
func Typed[V any](cache *Cache) *TypedCache[V] {
	return &TypedCache[V]{cache: cache}
}

func (c *TypedCache[V]) Get(key string) (V, bool) {
	var zero V
	if c.cache == nil {
		return zero, false
	}
	val, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := val.(V)
	return typed, ok
}

func (c *TypedCache[V]) Set(key string, value V) bool {
	if c.cache == nil {
		return false
	}
	return c.cache.Set(key, value)
}

func (c *TypedCache[V]) SetWithTTL(key string, value V, ttl time.Duration) bool {
	if c.cache == nil {
		return false
	}
	return c.cache.SetWithTTL(key, value, ttl)
}

func (c *TypedCache[V]) Del(key string) {
	if c.cache != nil {
		c.cache.Del(key)
	}
}

func (c *TypedCache[V]) Wait() {
	if c.cache != nil {
		c.cache.Wait()
	}
}
