package options

// WithSwaggerUrlPrefix swagger 路由前缀，例如 "/api/v1" 对应 /api/v1/swagger/*any
func WithSwaggerUrlPrefix(urlPrefix string) SwaggerOption {
	return func(o *SwaggerOptions) {
		o.UrlPrefix = urlPrefix
	}
}

type SwaggerOption func(*SwaggerOptions)

type SwaggerOptions struct {
	UrlPrefix string
}

func DefaultSwaggerOptions() *SwaggerOptions {
	return &SwaggerOptions{}
}
