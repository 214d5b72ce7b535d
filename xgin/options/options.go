package options

// EnableLogMiddleware 是否开启请求日志
func EnableLogMiddleware(enable bool) Option {
	return func(o *Options) {
		o.EnableLogMiddleware = enable
	}
}

// EnableTraceMiddleware 是否开启 trace
func EnableTraceMiddleware(enable bool) Option {
	return func(o *Options) {
		o.EnableTraceMiddleware = enable
	}
}

// EnableMetricRoute 是否挂载 prometheus 指标路由，xmetric 未开启时不生效
func EnableMetricRoute(enable bool) Option {
	return func(o *Options) {
		o.EnableMetricRoute = enable
	}
}

// LogSkipPaths 追加日志中间件忽略的路由
// 以 / 结尾按前缀匹配，例如 "/health/" 匹配 /health/live
func LogSkipPaths(paths ...string) Option {
	return func(o *Options) {
		o.LogSkipPaths = append(o.LogSkipPaths, paths...)
	}
}

type Option func(*Options)

type Options struct {
	EnableLogMiddleware   bool
	EnableTraceMiddleware bool
	EnableMetricRoute     bool
	LogSkipPaths          []string
}

func DefaultOptions() *Options {
	return &Options{
		EnableLogMiddleware:   true,
		EnableTraceMiddleware: true,
		EnableMetricRoute:     true,
		LogSkipPaths:          make([]string, 0),
	}
}
