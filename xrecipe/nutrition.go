package xrecipe

import (
	"context"
	"strings"

	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/spf13/cast"
)

type nutrients struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// nutritionTable 每 100g/ml 的营养成分
var nutritionTable = map[string]nutrients{
	"flour":        {Calories: 364, Protein: 10, Carbs: 76, Fat: 1},
	"sugar":        {Calories: 387, Protein: 0, Carbs: 100, Fat: 0},
	"butter":       {Calories: 717, Protein: 0.9, Carbs: 0, Fat: 81},
	"egg":          {Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11},
	"milk":         {Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1},
	"cream cheese": {Calories: 342, Protein: 6, Carbs: 4, Fat: 34},
	"chicken":      {Calories: 239, Protein: 27, Carbs: 0, Fat: 14},
	"beef":         {Calories: 250, Protein: 26, Carbs: 0, Fat: 17},
	"rice":         {Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3},
	"pasta":        {Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1},
}

// nutritionNames 按长度降序，部分匹配时优先更具体的名称
var nutritionNames = sortedKeys(nutritionTable)

// unitToBase 换算为 g/ml，未知单位按 1 处理
var unitToBase = map[string]float64{
	"g":     1,
	"kg":    1000,
	"oz":    28.35,
	"lb":    453.6,
	"ml":    1,
	"l":     1000,
	"cup":   240,
	"tbsp":  15,
	"tsp":   5,
	"piece": 100,
	"whole": 100,
	"pinch": 1,
	"dash":  1,
}

func baseAmount(ing Ingredient) float64 {
	factor, ok := unitToBase[strings.ToLower(ing.Unit)]
	if !ok {
		factor = 1
	}
	return ing.Amount * factor
}

// matchNutrition 先精确匹配，再双向包含匹配
func matchNutrition(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := nutritionTable[name]; ok {
		return name, true
	}
	for _, n := range nutritionNames {
		if strings.Contains(name, n) || (name != "" && strings.Contains(n, name)) {
			return n, true
		}
	}
	return "", false
}

// NutritionActor 按营养表估算整道菜的热量和三大营养素
type NutritionActor struct {
	baseActor
}

func NewNutritionActor() *NutritionActor {
	a := &NutritionActor{}
	a.baseActor = baseActor{id: NutritionID, name: "Nutrition Analyzer", analyze: a.analyzeNutrition}
	return a
}

func (a *NutritionActor) analyzeNutrition(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	ings, err := requireIngredients(d)
	if err != nil {
		return nil, err
	}

	var total nutrients
	unknown := make([]string, 0)
	for _, ing := range ings {
		key, ok := matchNutrition(ing.Name)
		if !ok {
			unknown = append(unknown, ing.Name)
			continue
		}
		n, amount := nutritionTable[key], baseAmount(ing)
		total.Calories += n.Calories * amount / 100
		total.Protein += n.Protein * amount / 100
		total.Carbs += n.Carbs * amount / 100
		total.Fat += n.Fat * amount / 100
	}
	total = nutrients{
		Calories: xutil.Round1(total.Calories),
		Protein:  xutil.Round1(total.Protein),
		Carbs:    xutil.Round1(total.Carbs),
		Fat:      xutil.Round1(total.Fat),
	}

	nutrition := map[string]any{
		"calories":           total.Calories,
		"protein":            total.Protein,
		"carbs":              total.Carbs,
		"fat":                total.Fat,
		"unknownIngredients": unknown,
	}
	if servings := cast.ToInt(d["servings"]); servings > 0 {
		nutrition["perServing"] = map[string]any{
			"calories": xutil.Round1(total.Calories / float64(servings)),
			"protein":  xutil.Round1(total.Protein / float64(servings)),
			"carbs":    xutil.Round1(total.Carbs / float64(servings)),
			"fat":      xutil.Round1(total.Fat / float64(servings)),
		}
	}

	return xpipeline.Data{
		"calories":        total.Calories,
		"protein":         total.Protein,
		"carbs":           total.Carbs,
		"fat":             total.Fat,
		"nutrition":       nutrition,
		"recommendations": nestedWith(d, "recommendations", "nutrition", nutritionAdvice(total)),
	}, nil
}

// nutritionAdvice 基于宏量营养素热量占比给出建议
func nutritionAdvice(n nutrients) []string {
	advice := make([]string, 0)
	if n.Calories <= 0 {
		return append(advice, "Nutrition data is unavailable for these ingredients")
	}
	fatRatio := n.Fat * 9 / n.Calories
	carbRatio := n.Carbs * 4 / n.Calories
	proteinRatio := n.Protein * 4 / n.Calories
	if fatRatio > 0.35 {
		advice = append(advice, "Consider reducing fats such as butter or oil")
	}
	if carbRatio > 0.6 {
		advice = append(advice, "Balance the carbohydrates with more protein or vegetables")
	}
	if proteinRatio < 0.1 {
		advice = append(advice, "Add a protein source such as eggs, legumes or lean meat")
	}
	if len(advice) == 0 {
		advice = append(advice, "Macronutrients are well balanced")
	}
	return advice
}
