package xcache

import (
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xconfig"

	. "github.com/bytedance/mockey"
	c "github.com/smartystreets/goconvey/convey"
)

func withCleanCacheMap(fn func()) {
	cacheMu.Lock()
	orig := cacheMap
	cacheMap = make(map[string]*Cache)
	cacheMu.Unlock()

	defer func() {
		_ = closeXCache()
		cacheMu.Lock()
		cacheMap = orig
		cacheMu.Unlock()
	}()
	fn()
}

func TestConfigMergeDefault(t *testing.T) {
	PatchConvey("TestConfigMergeDefault", t, func() {
		c.So(configMergeDefault(nil), c.ShouldResemble, &Config{
			NumCounters: defaultNumCounters,
			MaxCost:     defaultMaxCost,
			BufferItems: defaultBufferItems,
			DefaultTTL:  defaultTTL,
		})
		c.So(configMergeDefault(&Config{Name: "actor", MaxCost: 10, DefaultTTL: "1m"}), c.ShouldResemble, &Config{
			Name:        "actor",
			NumCounters: defaultNumCounters,
			MaxCost:     10,
			BufferItems: defaultBufferItems,
			DefaultTTL:  "1m",
		})
	})
}

func TestCache(t *testing.T) {
	PatchConvey("TestCache", t, func() {
		cache, err := New(nil)
		c.So(err, c.ShouldBeNil)
		defer cache.Close()

		c.So(cache.Set("flour", 364.0), c.ShouldBeTrue)
		cache.Wait()
		v, ok := cache.Get("flour")
		c.So(ok, c.ShouldBeTrue)
		c.So(v, c.ShouldEqual, 364.0)

		cache.Del("flour")
		_, ok = cache.Get("flour")
		c.So(ok, c.ShouldBeFalse)

		c.So(cache.SetWithTTL("short", 1, time.Millisecond), c.ShouldBeTrue)
		cache.Wait()
		time.Sleep(20 * time.Millisecond)
		_, ok = cache.Get("short")
		c.So(ok, c.ShouldBeFalse)
	})
}

func TestTypedCache(t *testing.T) {
	PatchConvey("TestTypedCache", t, func() {
		cache, err := New(nil)
		c.So(err, c.ShouldBeNil)
		defer cache.Close()

		tc := Typed[map[string]any](cache)
		tc.Set("k", map[string]any{"calories": 364.0})
		tc.Wait()
		v, ok := tc.Get("k")
		c.So(ok, c.ShouldBeTrue)
		c.So(v["calories"], c.ShouldEqual, 364.0)

		cache.Set("wrong", 1)
		cache.Wait()
		_, ok = tc.Get("wrong")
		c.So(ok, c.ShouldBeFalse)

		empty := Typed[int](nil)
		c.So(empty.Set("a", 1), c.ShouldBeFalse)
		_, ok = empty.Get("a")
		c.So(ok, c.ShouldBeFalse)
	})
}

func TestInitXCache(t *testing.T) {
	PatchConvey("TestInitXCache-NoConfig", t, func() {
		withCleanCacheMap(func() {
			Mock(xconfig.ContainKey).Return(false).Build()
			c.So(initXCache(), c.ShouldBeNil)
			c.So(C(), c.ShouldBeNil)
		})
	})

	PatchConvey("TestInitXCache-Multi", t, func() {
		withCleanCacheMap(func() {
			err := initByConfigs([]*Config{{Name: "actor"}, {Name: "remote"}})
			c.So(err, c.ShouldBeNil)
			c.So(C(), c.ShouldEqual, C("actor"))
			c.So(C("remote"), c.ShouldNotBeNil)
			c.So(C("none"), c.ShouldBeNil)

			c.So(Of[int]("remote").Set("a", 1), c.ShouldBeTrue)
		})
	})

	PatchConvey("TestInitXCache-MultiWithoutName", t, func() {
		withCleanCacheMap(func() {
			err := initByConfigs([]*Config{{Name: "a"}, {}})
			c.So(err, c.ShouldNotBeNil)
		})
	})
}
