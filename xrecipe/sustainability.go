package xrecipe

import (
	"context"
	"math"
	"sort"

	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"
)

// carbonFactors 每 kg 食材的 kg CO2e
var carbonFactors = map[string]float64{
	"lamb":    39.2,
	"beef":    27,
	"cheese":  13.5,
	"butter":  12,
	"pork":    12.1,
	"chicken": 6.9,
	"turkey":  10.9,
	"fish":    6.1,
	"salmon":  11.9,
	"shrimp":  11.8,
	"egg":     4.8,
	"rice":    2.7,
	"sugar":   3.2,
	"milk":    1.9,
	"cream":   5.6,
	"flour":   1.4,
	"pasta":   1.4,
	"tofu":    2,
	"bean":    2,
	"lentil":  0.9,
	"potato":  0.3,
	"tomato":  1.4,
	"onion":   0.5,
	"carrot":  0.4,
	"apple":   0.4,
}

var carbonKeys = sortedKeys(carbonFactors)

// defaultCarbonFactor 未登记食材按普通蔬菜估算
const defaultCarbonFactor = 0.7

var lowCarbonAlternatives = map[string][]string{
	"lamb":    {"lentils", "mushrooms"},
	"beef":    {"lentils", "mushrooms", "chicken"},
	"cheese":  {"nutritional yeast"},
	"butter":  {"olive oil"},
	"pork":    {"chicken", "tofu"},
	"chicken": {"tofu", "chickpeas"},
	"turkey":  {"tofu"},
	"salmon":  {"mackerel"},
	"shrimp":  {"mussels"},
	"milk":    {"oat milk"},
	"cream":   {"oat cream"},
	"rice":    {"bulgur"},
}

// SustainabilityActor 估算碳足迹并给出低碳替代
type SustainabilityActor struct {
	baseActor
}

func NewSustainabilityActor() *SustainabilityActor {
	a := &SustainabilityActor{}
	a.baseActor = baseActor{id: SustainabilityID, name: "Sustainability Analyzer", analyze: a.analyzeSustainability}
	return a
}

func (a *SustainabilityActor) analyzeSustainability(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	ings, err := requireIngredients(d)
	if err != nil {
		return nil, err
	}

	footprint := 0.0
	alternatives := map[string][]string{}
	for _, ing := range ings {
		factor := defaultCarbonFactor
		if key, ok := containsAny(ing.Name, carbonKeys); ok {
			factor = carbonFactors[key]
			if alts, ok := lowCarbonAlternatives[key]; ok {
				alternatives[ing.Name] = alts
			}
		}
		footprint += baseAmount(ing) / 1000 * factor
	}

	return xpipeline.Data{
		"sustainabilityScore": sustainabilityScore(footprint),
		"carbonFootprint":     xutil.Round1(footprint),
		"alternatives":        mergeAlternatives(d, alternatives),
	}, nil
}

// sustainabilityScore 0 kg 为 100 分，每 kg CO2e 扣 10 分
func sustainabilityScore(footprint float64) int {
	return int(math.Max(0, math.Round(100-footprint*10)))
}

// sortedKeys 按长度降序，保证 "cream cheese" 这类更具体的名称先命中
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
