package xgin

import "github.com/xiaoshicae/xactor/xconfig"

const (
	ginConfigKey        = "XGin"
	ginSwaggerConfigKey = "XGin.Swagger"
)

// Config HTTP 服务相关配置
type Config struct {
	// Host 服务监听的host
	// optional default "0.0.0.0"
	Host string `mapstructure:"Host"`

	// Port 服务端口号
	// optional default 8000
	Port int `mapstructure:"Port"`

	// UseHttp2 非 TLS 模式下启用 h2c
	// optional default false
	UseHttp2 bool `mapstructure:"UseHttp2"`

	// CertFile TLS 证书，与 KeyFile 同时配置时启用 https
	// optional default ""
	CertFile string `mapstructure:"CertFile"`

	// KeyFile TLS 私钥
	// optional default ""
	KeyFile string `mapstructure:"KeyFile"`

	// LogSkipPaths 不记录请求日志的路由
	// optional default ["/health", "/metrics"]
	LogSkipPaths []string `mapstructure:"LogSkipPaths"`

	// Swagger swagger相关配置
	// optional default nil
	Swagger *SwaggerConfig `mapstructure:"Swagger"`
}

// SwaggerConfig swagger相关配置
type SwaggerConfig struct {
	// Host 提供api服务的host
	// optional default ""
	Host string `mapstructure:"Host"`

	// BasePath api公共前缀
	// optional default ""
	BasePath string `mapstructure:"BasePath"`

	// Title api管理后台的title
	// optional default "XActor API"
	Title string `mapstructure:"Title"`

	// Description api管理后台的描述信息
	// optional default ""
	Description string `mapstructure:"Description"`

	// Schemes api支持的协议
	// optional default ["http", "https"]
	Schemes []string `mapstructure:"Schemes"`
}

// GetConfig 获取 XGin 配置
func GetConfig() *Config {
	config := &Config{}
	_ = xconfig.UnmarshalConfig(ginConfigKey, config)
	return configMergeDefault(config)
}

// GetSwaggerConfig 获取 XGin.Swagger 配置
func GetSwaggerConfig() *SwaggerConfig {
	config := &SwaggerConfig{}
	_ = xconfig.UnmarshalConfig(ginSwaggerConfigKey, config)
	return swaggerConfigMergeDefault(config)
}

func configMergeDefault(c *Config) *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port <= 0 {
		c.Port = 8000
	}
	if c.LogSkipPaths == nil {
		c.LogSkipPaths = []string{"/health", "/metrics"}
	}
	if c.Swagger != nil {
		c.Swagger = swaggerConfigMergeDefault(c.Swagger)
	}
	return c
}

func swaggerConfigMergeDefault(c *SwaggerConfig) *SwaggerConfig {
	if c == nil {
		c = &SwaggerConfig{}
	}
	if c.Title == "" {
		c.Title = "XActor API"
	}
	if len(c.Schemes) == 0 {
		c.Schemes = []string{"http", "https"}
	}
	return c
}
