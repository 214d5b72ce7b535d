// Package xrecipe 菜谱分析 actor、预置 pipeline 及聚合分析
package xrecipe

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xpipeline"

	"github.com/spf13/cast"
)

const (
	ProcessorID      = "recipe-processor"
	NutritionID      = "nutrition-analyzer"
	SustainabilityID = "sustainability-analyzer"
	SeasonalityID    = "seasonality-analyzer"
	DietaryID        = "dietary-analyzer"
	TechniqueID      = "technique-analyzer"
	CuisineID        = "cuisine-analyzer"
)

// analyzeFunc 根据当前数据计算需要合并的字段
type analyzeFunc func(ctx context.Context, d xpipeline.Data) (xpipeline.Data, error)

// baseActor 分析类 actor 的公共部分：id、名称、表现分及 payload 解析
type baseActor struct {
	xactor.PerformanceTracker

	id      string
	name    string
	analyze analyzeFunc
}

func (a *baseActor) ID() string {
	return a.id
}

func (a *baseActor) Name() string {
	return a.name
}

func (a *baseActor) Handle(ctx context.Context, msg *xactor.Message) (any, error) {
	result, err := a.handle(ctx, msg)
	if msg.Type != xactor.MessageTypeQuery {
		a.Observe(err == nil)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *baseActor) handle(ctx context.Context, msg *xactor.Message) (xpipeline.Data, error) {
	d, err := payloadData(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.id, err)
	}
	return a.analyze(ctx, d)
}

func payloadData(payload any) (xpipeline.Data, error) {
	switch v := payload.(type) {
	case xpipeline.Data:
		return v, nil
	case map[string]any:
		return v, nil
	case nil:
		return nil, fmt.Errorf("%w, payload is nil", ErrInvalidPayload)
	default:
		return nil, fmt.Errorf("%w, type=[%T]", ErrInvalidPayload, payload)
	}
}

// ingredientsOf 兼容 []Ingredient、字符串列表及 map 列表，字符串视为 1 piece
func ingredientsOf(d xpipeline.Data) ([]Ingredient, error) {
	switch v := d["ingredients"].(type) {
	case nil:
		return nil, nil
	case []Ingredient:
		return v, nil
	case []string:
		out := make([]Ingredient, 0, len(v))
		for _, s := range v {
			out = append(out, Ingredient{Name: strings.TrimSpace(s), Amount: 1, Unit: "piece"})
		}
		return out, nil
	case []map[string]any:
		out := make([]Ingredient, 0, len(v))
		for _, m := range v {
			ing, err := ingredientFromMap(m)
			if err != nil {
				return nil, err
			}
			out = append(out, ing)
		}
		return out, nil
	case []any:
		out := make([]Ingredient, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				out = append(out, Ingredient{Name: strings.TrimSpace(it), Amount: 1, Unit: "piece"})
			case map[string]any:
				ing, err := ingredientFromMap(it)
				if err != nil {
					return nil, err
				}
				out = append(out, ing)
			default:
				return nil, fmt.Errorf("%w, ingredient type=[%T]", ErrInvalidPayload, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w, ingredients type=[%T]", ErrInvalidPayload, v)
	}
}

func ingredientFromMap(m map[string]any) (Ingredient, error) {
	name := strings.TrimSpace(cast.ToString(m["name"]))
	if name == "" {
		return Ingredient{}, fmt.Errorf("%w, ingredient name is empty", ErrInvalidPayload)
	}
	ing := Ingredient{Name: name, Amount: 1, Unit: "piece", Notes: cast.ToString(m["notes"])}
	if raw, ok := m["amount"]; ok {
		amount, err := cast.ToFloat64E(raw)
		if err != nil {
			return Ingredient{}, fmt.Errorf("%w, ingredient=[%s], amount=[%v]", ErrInvalidPayload, name, raw)
		}
		ing.Amount = amount
	}
	if unit := strings.ToLower(strings.TrimSpace(cast.ToString(m["unit"]))); unit != "" {
		ing.Unit = unit
	}
	return ing, nil
}

// requireIngredients 至少一个配料
func requireIngredients(d xpipeline.Data) ([]Ingredient, error) {
	ings, err := ingredientsOf(d)
	if err != nil {
		return nil, err
	}
	if len(ings) == 0 {
		return nil, fmt.Errorf("%w, ingredients is empty", ErrInvalidPayload)
	}
	return ings, nil
}

func instructionsOf(d xpipeline.Data) ([]string, error) {
	raw, ok := d["instructions"]
	if !ok || raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok {
		if s = strings.TrimSpace(s); s == "" {
			return nil, nil
		}
		return []string{s}, nil
	}
	steps, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w, instructions type=[%T]", ErrInvalidPayload, raw)
	}
	out := make([]string, 0, len(steps))
	for _, step := range steps {
		if step = strings.TrimSpace(step); step != "" {
			out = append(out, step)
		}
	}
	return out, nil
}

func requireInstructions(d xpipeline.Data) ([]string, error) {
	steps, err := instructionsOf(d)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w, instructions is empty", ErrInvalidPayload)
	}
	return steps, nil
}

// containsAny 名称中包含任一关键词时返回第一个命中的关键词
func containsAny(name string, keywords []string) (string, bool) {
	name = strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return k, true
		}
	}
	return "", false
}

// nestedWith 在 d[key] 子对象的拷贝上设置 field，使不同 actor 写入同一子对象时互不覆盖
func nestedWith(d xpipeline.Data, key, field string, value any) map[string]any {
	out := map[string]any{}
	if m, ok := d[key].(map[string]any); ok {
		out = maps.Clone(m)
	}
	out[field] = value
	return out
}

// mergeAlternatives 以配料名为 key 合并替代建议，保留已有建议并去重
func mergeAlternatives(d xpipeline.Data, add map[string][]string) map[string]any {
	out := map[string]any{}
	if m, ok := d["alternatives"].(map[string]any); ok {
		out = maps.Clone(m)
	}
	for name, alts := range add {
		existing := cast.ToStringSlice(out[name])
		for _, a := range alts {
			if !slices.Contains(existing, a) {
				existing = append(existing, a)
			}
		}
		out[name] = existing
	}
	return out
}
