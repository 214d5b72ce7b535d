package xrecipe

import (
	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"
)

const (
	RecipeProcessing = "Recipe Processing"
	MealPlanning     = "Meal Planning"
)

const (
	hasName         = `has(data.name) && string(data.name).trim() != ""`
	hasIngredients  = `has(data.ingredients) && size(data.ingredients) > 0`
	hasInstructions = `has(data.instructions) && (type(data.instructions) == string ? ` +
		`string(data.instructions).trim() != "" : data.instructions.exists(s, string(s).trim() != ""))`
)

// processedBy 每次执行都会追加时间戳，不参与缓存 key
var cacheOpts = []xactor.CacheOption{xactor.WithIgnoredKeys(xpipeline.ProcessedByKey)}

// RecipeProcessingDefinition 规整 -> 营养 -> 饮食 -> 技法 -> 菜系
func RecipeProcessingDefinition() *xpipeline.Definition {
	return &xpipeline.Definition{
		Name:        RecipeProcessing,
		Description: "normalize a recipe and analyze nutrition, dietary tags, techniques and cuisine",
		Stages: []*xpipeline.StageDefinition{
			{Name: "process", Actor: ProcessorID, Validate: "(" + hasName + ") || (" + hasIngredients + ")"},
			{Name: "nutrition", Actor: NutritionID, Validate: hasIngredients},
			{Name: "dietary", Actor: DietaryID, Validate: hasIngredients},
			{Name: "technique", Actor: TechniqueID, Validate: hasInstructions},
			{Name: "cuisine", Actor: CuisineID, Validate: hasIngredients + " && " + hasInstructions},
		},
	}
}

// MealPlanningDefinition 规整 -> 营养 -> 时令 -> 可持续
func MealPlanningDefinition() *xpipeline.Definition {
	return &xpipeline.Definition{
		Name:        MealPlanning,
		Description: "normalize a recipe and evaluate nutrition, seasonality and sustainability for meal planning",
		Stages: []*xpipeline.StageDefinition{
			{Name: "process", Actor: ProcessorID, Validate: "(" + hasName + ") || (" + hasIngredients + ")"},
			{Name: "nutrition", Actor: NutritionID, Validate: hasIngredients},
			{Name: "seasonality", Actor: SeasonalityID, Validate: hasIngredients},
			{Name: "sustainability", Actor: SustainabilityID, Validate: hasIngredients},
		},
	}
}

// Definitions 内置定义，XPipeline.Definitions 中的同名定义优先
func Definitions() []*xpipeline.Definition {
	defs := []*xpipeline.Definition{RecipeProcessingDefinition(), MealPlanningDefinition()}
	for _, c := range xpipeline.GetConfig().Definitions {
		if c == nil || c.Name == "" {
			continue
		}
		replaced := false
		for i, d := range defs {
			if d.Name == c.Name {
				defs[i], replaced = c, true
				break
			}
		}
		if !replaced {
			defs = append(defs, c)
		}
	}
	return defs
}

// Actors 内置分析 actor
func Actors() []xactor.Actor {
	return []xactor.Actor{
		NewProcessorActor(),
		NewNutritionActor(),
		NewSustainabilityActor(),
		NewSeasonalityActor(),
		NewDietaryActor(),
		NewTechniqueActor(),
		NewCuisineActor(),
	}
}

// NewSystem 注册内置 actor，XRecipe.Remote 中配置的远程 actor 替换同 id 的本地 actor
// 按 XActor.Cache 配置为 actor 包装结果缓存
func NewSystem(opts ...xactor.Option) (*xactor.System, error) {
	system := xactor.NewSystem(opts...)

	remotes := map[string]*RemoteConfig{}
	for _, r := range GetConfig().Remote {
		if r == nil || r.ID == "" || r.Endpoint == "" {
			return nil, xerror.Newf("xrecipe", "newSystem", "remote actor id and endpoint are required, config=[%s]", xutil.ToJsonString(r))
		}
		remotes[r.ID] = r
	}

	for _, a := range Actors() {
		if r, ok := remotes[a.ID()]; ok {
			delete(remotes, a.ID())
			xutil.InfoIfEnableDebug("XActor xrecipe actor=[%s] replaced by remote endpoint=[%s]", a.ID(), r.Endpoint)
			if err := system.AddActor(xactor.WrapWithConfigCache(NewRemoteActor(r), true, cacheOpts...)); err != nil {
				return nil, xerror.New("xrecipe", "newSystem", err)
			}
			continue
		}
		if err := system.AddActor(xactor.WrapWithConfigCache(a, false, cacheOpts...)); err != nil {
			return nil, xerror.New("xrecipe", "newSystem", err)
		}
	}

	// 不对应内置 actor 的远程 actor 也注册，供配置化 pipeline 使用
	for _, r := range GetConfig().Remote {
		if _, ok := remotes[r.ID]; !ok {
			continue
		}
		delete(remotes, r.ID)
		if err := system.AddActor(xactor.WrapWithConfigCache(NewRemoteActor(r), true, cacheOpts...)); err != nil {
			return nil, xerror.New("xrecipe", "newSystem", err)
		}
	}
	return system, nil
}

// NewRegistry 构建所有定义的 pipeline
func NewRegistry(system *xactor.System) (*xpipeline.Registry, error) {
	registry := xpipeline.NewRegistry()
	for _, d := range Definitions() {
		p, err := d.Build(system)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
