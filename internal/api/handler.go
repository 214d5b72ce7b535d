package api

import (
	"net/http"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xlog"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xrecipe"
	"github.com/xiaoshicae/xactor/xserver"

	"github.com/gin-gonic/gin"
)

// Handler 对外暴露 actor、pipeline 与菜谱分析接口
type Handler struct {
	analyzer *xrecipe.Analyzer
}

func NewHandler(analyzer *xrecipe.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResponse{Status: "ok", Version: xserver.VERSION})
}

// ListActors godoc
// @Summary List registered actors
// @Description Returns actors sorted by id, with the rolling performance score when the actor tracks one.
// @Tags Actors
// @Produce json
// @Success 200 {array} ActorInfo
// @Router /api/v1/actors [get]
func (h *Handler) ListActors(c *gin.Context) {
	actors := h.analyzer.System().Actors()
	out := make([]*ActorInfo, 0, len(actors))
	for _, a := range actors {
		info := &ActorInfo{ID: a.ID(), Name: a.Name()}
		if s, ok := a.(xactor.Scorer); ok {
			p := s.Performance()
			info.Performance = &p
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, out)
}

// ListPipelines godoc
// @Summary List registered pipelines
// @Tags Pipelines
// @Produce json
// @Success 200 {array} PipelineInfo
// @Router /api/v1/pipelines [get]
func (h *Handler) ListPipelines(c *gin.Context) {
	pipelines := h.analyzer.Registry().Pipelines()
	out := make([]*PipelineInfo, 0, len(pipelines))
	for _, p := range pipelines {
		info := &PipelineInfo{Name: p.Name(), Stages: make([]*StageInfo, 0, len(p.Stages()))}
		for _, s := range p.Stages() {
			info.Stages = append(info.Stages, &StageInfo{Name: s.Name, Actor: s.ActorID})
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, out)
}

// ProcessPipeline godoc
// @Summary Run a pipeline
// @Description Runs the named pipeline over the request body and returns the merged data with processedBy provenance.
// @Tags Pipelines
// @Accept json
// @Produce json
// @Param name path string true "pipeline name" example(Recipe Processing)
// @Param data body map[string]any true "input data"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /api/v1/pipelines/{name}/process [post]
func (h *Handler) ProcessPipeline(c *gin.Context) {
	var input xpipeline.Data
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}
	if input == nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: "request body must be a json object"})
		return
	}

	name := c.Param("name")
	out, err := h.analyzer.ProcessData(c.Request.Context(), name, input)
	if err != nil {
		h.fail(c, "process", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AnalyzeRecipe godoc
// @Summary Analyze a recipe
// @Description Runs nutrition, sustainability and seasonality analysis concurrently and merges the results.
// @Tags Recipes
// @Accept json
// @Produce json
// @Param recipe body xrecipe.Recipe true "recipe"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /api/v1/recipes/analyze [post]
func (h *Handler) AnalyzeRecipe(c *gin.Context) {
	recipe := &xrecipe.Recipe{}
	if err := c.ShouldBindJSON(recipe); err != nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	out, err := h.analyzer.Analyze(c.Request.Context(), recipe)
	if err != nil {
		h.fail(c, "analyze", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		xlog.Warn(c.Request.Context(), "[api] %s failed, status=[%d], err=[%v]", op, status, err)
	}
	_ = c.Error(err)
	c.JSON(status, &ErrorResponse{Error: err.Error()})
}
