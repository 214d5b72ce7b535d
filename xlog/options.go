package xlog

// KV 为单条日志追加字段
func KV(k string, v any) Option {
	return func(o *options) {
		o.KV[k] = v
	}
}

func KVMap(m map[string]any) Option {
	return func(o *options) {
		for k, v := range m {
			o.KV[k] = v
		}
	}
}

type Option func(*options)

type options struct {
	KV map[string]any
}
