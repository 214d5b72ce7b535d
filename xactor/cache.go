package xactor

import (
	"context"
	"slices"
	"time"

	"github.com/xiaoshicae/xactor/xcache"
	"github.com/xiaoshicae/xactor/xutil"
)

// CachedActor 按 (actor id, payload) 缓存结果的装饰器，只缓存成功结果
// 适用于结果只依赖 payload 的 actor，如远程分析服务
type CachedActor struct {
	Actor

	cache       *xcache.TypedCache[any]
	ttl         time.Duration
	ignoredKeys []string
}

type CacheOption func(*CachedActor)

// WithIgnoredKeys 计算缓存 key 时忽略的 payload 字段，如每次执行都会变化的来源记录
func WithIgnoredKeys(keys ...string) CacheOption {
	return func(c *CachedActor) {
		c.ignoredKeys = append(c.ignoredKeys, keys...)
	}
}

// NewCachedActor cache 为 nil 时直接返回原 actor
func NewCachedActor(actor Actor, cache *xcache.Cache, ttl time.Duration, opts ...CacheOption) Actor {
	if cache == nil {
		return actor
	}
	c := &CachedActor{Actor: actor, cache: xcache.Typed[any](cache), ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedActor) Handle(ctx context.Context, msg *Message) (any, error) {
	key := c.cacheKey(msg)
	if key != "" {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
	}

	result, err := c.Actor.Handle(ctx, msg)
	if err != nil || key == "" {
		return result, err
	}
	if c.ttl > 0 {
		c.cache.SetWithTTL(key, result, c.ttl)
	} else {
		c.cache.Set(key, result)
	}
	return result, nil
}

// Performance 透传被装饰 actor 的表现分
func (c *CachedActor) Performance() float64 {
	if s, ok := c.Actor.(Scorer); ok {
		return s.Performance()
	}
	return defaultPerformance
}

// cacheKey payload 无法序列化时返回空，不走缓存
func (c *CachedActor) cacheKey(msg *Message) string {
	var v any = msg.Payload
	if len(c.ignoredKeys) > 0 {
		// 非对象 payload 转换失败时按原值计算
		if m, err := xutil.ToMap(msg.Payload); err == nil {
			for _, k := range c.ignoredKeys {
				delete(m, k)
			}
			v = m
		}
	}
	payload := xutil.ToJsonString(v)
	if payload == "" {
		return ""
	}
	return "xactor:" + c.ID() + ":" + payload
}

// WrapWithConfigCache 按 XActor.Cache 配置为 actor 包一层缓存，未开启或不在名单内时原样返回
func WrapWithConfigCache(actor Actor, remote bool, opts ...CacheOption) Actor {
	c := GetConfig().Cache
	if !c.Enable {
		return actor
	}
	if len(c.Actors) == 0 && !remote {
		return actor
	}
	if len(c.Actors) > 0 && !slices.Contains(c.Actors, actor.ID()) {
		return actor
	}
	return NewCachedActor(actor, xcache.C(c.Name), xutil.ToDuration(c.TTL), opts...)
}
