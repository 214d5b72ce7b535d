package api

import (
	"github.com/xiaoshicae/xactor/internal/api/docs"
	"github.com/xiaoshicae/xactor/xgin"
	"github.com/xiaoshicae/xactor/xgin/options"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xrecipe"
	"github.com/xiaoshicae/xactor/xserver"

	"github.com/gin-gonic/gin"
)

// @title XActor API
// @description Actor pipelines for recipe analysis.

// Register 挂载所有路由
func (h *Handler) Register(e *gin.Engine) {
	e.GET("/health", h.Health)

	v1 := e.Group("/api/v1")
	{
		v1.GET("/actors", h.ListActors)
		v1.GET("/pipelines", h.ListPipelines)
		v1.POST("/pipelines/:name/process", h.ProcessPipeline)
		v1.POST("/recipes/analyze", h.AnalyzeRecipe)
	}
}

// NewServer 创建带 swagger 文档的 HTTP 服务，/metrics 由 xgin 在启动时挂载
func NewServer(analyzer *xrecipe.Analyzer, opts ...options.Option) *xgin.XGin {
	return newServer(NewHandler(analyzer), opts...)
}

// Serve 阻塞运行 HTTP 服务
// Analyzer 依赖 XRecipe 与 XPipeline 配置，因此在配置加载后的 BeforeStart hook 中创建
func Serve(opts ...options.Option) error {
	h := &Handler{}
	xhook.BeforeStart(func() error {
		analyzer, err := xrecipe.NewAnalyzer()
		if err != nil {
			return err
		}
		h.analyzer = analyzer
		return nil
	}, xhook.Order(100))
	return xserver.Run(newServer(h, opts...))
}

func newServer(h *Handler, opts ...options.Option) *xgin.XGin {
	return xgin.New(opts...).
		WithRouteRegister(h.Register).
		WithSwagger(docs.SwaggerInfo)
}
