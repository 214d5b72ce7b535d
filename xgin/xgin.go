package xgin

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xgin/middleware"
	"github.com/xiaoshicae/xactor/xgin/options"
	"github.com/xiaoshicae/xactor/xgin/swagger"
	"github.com/xiaoshicae/xactor/xmetric"
	"github.com/xiaoshicae/xactor/xserver"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const defaultWaitStopDuration = 30 * time.Second

var _ xserver.Server = (*XGin)(nil)

// New 创建 XGin builder
func New(opts ...options.Option) *XGin {
	setGinMode()
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	return &XGin{
		engine: engine,
		opts:   opts,
	}
}

// XGin 基于 gin 的 HTTP 服务，实现 xserver.Server
type XGin struct {
	engine          *gin.Engine
	opts            []options.Option
	routerRegisters []func(*gin.Engine)
	middlewares     []gin.HandlerFunc
	recoveryFunc    gin.RecoveryFunc
	swaggerInfo     *swag.Spec
	swaggerOpts     []options.SwaggerOption

	buildOnce   sync.Once
	metricOnce  sync.Once
	enableMetric bool

	srvMu sync.Mutex
	srv   *http.Server
}

func (g *XGin) WithRouteRegister(f ...func(*gin.Engine)) *XGin {
	g.routerRegisters = append(g.routerRegisters, f...)
	return g
}

func (g *XGin) WithMiddleware(m ...gin.HandlerFunc) *XGin {
	g.middlewares = append(g.middlewares, m...)
	return g
}

func (g *XGin) WithSwagger(swaggerInfo *swag.Spec, opts ...options.SwaggerOption) *XGin {
	g.swaggerInfo = swaggerInfo
	g.swaggerOpts = opts
	return g
}

func (g *XGin) WithRecoverFunc(recoveryFunc gin.RecoveryFunc) *XGin {
	g.recoveryFunc = recoveryFunc
	return g
}

// Build 注册 middleware 与路由，重复调用只生效一次
func (g *XGin) Build() *XGin {
	g.buildOnce.Do(func() {
		o := g.getXGinOptions()
		g.enableMetric = o.EnableMetricRoute
		g.registerMiddleware(o)
		for _, register := range g.routerRegisters {
			register(g.engine)
		}
		if g.swaggerInfo != nil {
			injectSwaggerInfo(g.swaggerInfo, g.engine, g.swaggerOpts...)
		}
	})
	return g
}

func (g *XGin) Engine() *gin.Engine {
	g.Build()
	return g.engine
}

// Start 执行 hook 并阻塞运行，等待退出信号
func (g *XGin) Start() error {
	return xserver.Run(g)
}

// Run 实现 xserver.Server，需在 BeforeStart hook 之后调用
func (g *XGin) Run() error {
	g.Build()
	g.registerMetricRoute()

	c := GetConfig()
	if (c.CertFile == "") != (c.KeyFile == "") {
		return xerror.Newf("xgin", "run", "TLS config incomplete, CertFile and KeyFile must be both set or both empty")
	}

	if g.swaggerInfo != nil {
		setGinSwaggerInfo(g.swaggerInfo)
	}

	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	PrintBanner()
	xutil.InfoIfEnableDebug("XActor gin server listen on: %s", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: g.handler(c),
	}
	g.srvMu.Lock()
	g.srv = srv
	g.srvMu.Unlock()

	var err error
	if c.CertFile != "" {
		xutil.InfoIfEnableDebug("XActor gin server use TLS, cert=[%s], key=[%s]", c.CertFile, c.KeyFile)
		err = srv.ListenAndServeTLS(c.CertFile, c.KeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 实现 xserver.Server，优雅关闭
func (g *XGin) Stop() error {
	g.srvMu.Lock()
	srv := g.srv
	g.srvMu.Unlock()

	if srv == nil {
		xutil.WarnIfEnableDebug("XActor gin server Stop called before Run, skip")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultWaitStopDuration)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		xutil.ErrorIfEnableDebug("XActor gin server stop failed, err=[%v]", err)
		return err
	}
	return nil
}

func (g *XGin) handler(c *Config) http.Handler {
	h := g.engine.Handler()
	if c.UseHttp2 && c.CertFile == "" {
		xutil.InfoIfEnableDebug("XActor gin server use h2c")
		return h2c.NewHandler(h, &http2.Server{})
	}
	return h
}

// registerMetricRoute xmetric 在 BeforeStart hook 中初始化，因此延迟到 Run 时挂载
func (g *XGin) registerMetricRoute() {
	g.metricOnce.Do(func() {
		if !g.enableMetric || !xmetric.Enabled() {
			return
		}
		path := xmetric.Path()
		for _, r := range g.engine.Routes() {
			if r.Method == http.MethodGet && r.Path == path {
				return
			}
		}
		g.engine.GET(path, gin.WrapH(xmetric.DefaultHandler()))
	})
}

func (g *XGin) getXGinOptions() *options.Options {
	o := options.DefaultOptions()
	for _, opt := range g.opts {
		opt(o)
	}
	return o
}

// registerMiddleware 顺序: session, trace, recover, log, 自定义
// trace 需在 recover 之前，panic 时 span 仍能记录 500
func (g *XGin) registerMiddleware(o *options.Options) {
	g.engine.Use(middleware.Session())

	if o.EnableTraceMiddleware {
		g.engine.Use(middleware.Trace())
	}

	g.engine.Use(middleware.Recover(g.recoveryFunc))

	if o.EnableLogMiddleware {
		skip := append(GetConfig().LogSkipPaths, o.LogSkipPaths...)
		g.engine.Use(middleware.Log(middleware.WithSkipPaths(skip...)))
	}

	g.engine.Use(g.middlewares...)
}

func setGinMode() {
	if strings.TrimSpace(os.Getenv(gin.EnvGinMode)) != "" {
		return
	}
	if xutil.EnableDebug() {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}

func injectSwaggerInfo(swaggerInfo *swag.Spec, engine *gin.Engine, opts ...options.SwaggerOption) {
	if swaggerInfo == nil || engine == nil {
		return
	}

	o := options.DefaultSwaggerOptions()
	for _, opt := range opts {
		opt(o)
	}
	engine.GET(o.UrlPrefix+swagger.SwaggerUrl, swagger.SwaggerHandler)
}

func setGinSwaggerInfo(swaggerInfo *swag.Spec) {
	c := GetSwaggerConfig()
	swaggerInfo.Version = xconfig.GetServerVersion()
	swaggerInfo.Host = c.Host
	swaggerInfo.BasePath = c.BasePath
	swaggerInfo.Title = c.Title
	swaggerInfo.Description = c.Description
	swaggerInfo.Schemes = c.Schemes
}
