package xrecipe

import (
	"context"
	"errors"
	"time"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"
)

// ErrPipelineNotFound 未注册的 pipeline
var ErrPipelineNotFound = errors.New("pipeline not found")

// Analyzer 菜谱分析入口，持有 actor system 与 pipeline 注册表
type Analyzer struct {
	system   *xactor.System
	registry *xpipeline.Registry
	analysis []*xpipeline.Pipeline
	timeout  time.Duration
}

// NewAnalyzer 使用内置 actor 与定义创建 Analyzer
func NewAnalyzer(opts ...xactor.Option) (*Analyzer, error) {
	system, err := NewSystem(opts...)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(system)
	if err != nil {
		return nil, err
	}
	return NewAnalyzerWith(system, registry)
}

// NewAnalyzerWith 使用已有的 system 与 registry
func NewAnalyzerWith(system *xactor.System, registry *xpipeline.Registry) (*Analyzer, error) {
	analysis := make([]*xpipeline.Pipeline, 0, 3)
	for _, s := range []struct{ name, actor string }{
		{"Nutrition Analysis", NutritionID},
		{"Sustainability Analysis", SustainabilityID},
		{"Seasonality Analysis", SeasonalityID},
	} {
		p, err := (&xpipeline.Definition{
			Name:   s.name,
			Stages: []*xpipeline.StageDefinition{{Name: s.actor, Actor: s.actor, Validate: hasIngredients}},
		}).Build(system)
		if err != nil {
			return nil, err
		}
		analysis = append(analysis, p)
	}

	return &Analyzer{
		system:   system,
		registry: registry,
		analysis: analysis,
		timeout:  xutil.ToDuration(xpipeline.GetConfig().Timeout),
	}, nil
}

func (a *Analyzer) System() *xactor.System {
	return a.system
}

func (a *Analyzer) Registry() *xpipeline.Registry {
	return a.registry
}

// Analyze 并发执行营养、可持续与时令分析并合并结果
func (a *Analyzer) Analyze(ctx context.Context, recipe *Recipe) (xpipeline.Data, error) {
	input, err := recipeData(recipe)
	if err != nil {
		return nil, err
	}
	if a.timeout <= 0 {
		return xpipeline.RunAll(ctx, input, a.analysis...)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return xpipeline.RunAll(ctx, input, a.analysis...)
}

// Process 使用指定 pipeline 处理菜谱
func (a *Analyzer) Process(ctx context.Context, pipelineName string, recipe *Recipe) (xpipeline.Data, error) {
	input, err := recipeData(recipe)
	if err != nil {
		return nil, err
	}
	return a.ProcessData(ctx, pipelineName, input)
}

// ProcessData 使用指定 pipeline 处理任意数据，受 XPipeline.Timeout 限制
func (a *Analyzer) ProcessData(ctx context.Context, pipelineName string, input xpipeline.Data) (xpipeline.Data, error) {
	p, ok := a.registry.Get(pipelineName)
	if !ok {
		return nil, xerror.Newf("xrecipe", "process", "%w, name=[%s]", ErrPipelineNotFound, pipelineName)
	}
	return p.ProcessWithTimeout(ctx, input, a.timeout)
}

func recipeData(recipe *Recipe) (xpipeline.Data, error) {
	if recipe == nil {
		return nil, &RecipeValidationError{Field: "recipe", Reason: "can not be nil"}
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe.ToData()
}
