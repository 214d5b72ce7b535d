package xrecipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/spf13/cast"
)

var cookingTips = map[string][]string{
	"general": {
		"Prep all ingredients before starting",
		"Read the recipe thoroughly before beginning",
	},
	"baking": {
		"Ensure ingredients are at room temperature",
		"Measure ingredients precisely",
	},
	"meat": {
		"Let meat rest before cutting",
		"Pat meat dry before cooking",
	},
	"vegetables": {
		"Don't overcook vegetables",
		"Cut vegetables uniformly for even cooking",
	},
}

var (
	meatKeywords      = []string{"chicken", "beef", "pork", "fish", "lamb", "turkey"}
	vegetableKeywords = []string{"carrot", "broccoli", "spinach", "mushroom", "zucchini", "pepper"}
)

// ProcessorActor 规整配料并给出复杂度与烹饪建议
type ProcessorActor struct {
	baseActor
}

func NewProcessorActor() *ProcessorActor {
	a := &ProcessorActor{}
	a.baseActor = baseActor{id: ProcessorID, name: "Recipe Processor", analyze: a.process}
	return a
}

func (a *ProcessorActor) process(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	ings, err := ingredientsOf(d)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(cast.ToString(d["name"]))
	if name == "" && len(ings) == 0 {
		return nil, fmt.Errorf("%w, name or ingredients is required", ErrInvalidPayload)
	}
	steps, err := instructionsOf(d)
	if err != nil {
		return nil, err
	}

	normalized := make([]any, 0, len(ings))
	for _, ing := range ings {
		m := map[string]any{
			"name":   strings.TrimSpace(ing.Name),
			"amount": ing.Amount,
			"unit":   strings.ToLower(strings.TrimSpace(ing.Unit)),
		}
		if ing.Notes != "" {
			m["notes"] = ing.Notes
		}
		normalized = append(normalized, m)
	}

	minutes := cast.ToFloat64(d["prepTime"]) + cast.ToFloat64(d["cookTime"])
	out := xpipeline.Data{
		"ingredients": normalized,
		"complexity": map[string]any{
			"prep":       xutil.Round1(float64(len(steps)) / 5),
			"ingredient": xutil.Round1(float64(len(ings)) / 5),
			"time":       xutil.Round1(minutes / 60),
		},
		"tips": tipsFor(cast.ToString(d["category"]), ings),
	}
	if name != "" {
		out["name"] = name
	}
	return out, nil
}

// tipsFor 按分类和配料挑选建议，结果稳定
func tipsFor(category string, ings []Ingredient) []string {
	tips := append([]string(nil), cookingTips["general"]...)
	if strings.EqualFold(category, "dessert") {
		tips = append(tips, cookingTips["baking"]...)
	}

	names := make([]string, 0, len(ings))
	for _, ing := range ings {
		names = append(names, strings.ToLower(ing.Name))
	}
	joined := strings.Join(names, " ")
	if _, ok := containsAny(joined, meatKeywords); ok {
		tips = append(tips, cookingTips["meat"]...)
	}
	if _, ok := containsAny(joined, vegetableKeywords); ok {
		tips = append(tips, cookingTips["vegetables"]...)
	}
	if len(ings) > 0 {
		tips = append(tips, "For best results, use fresh "+ings[0].Name)
	}
	return tips
}
