package xrecipe

import (
	"context"
	"slices"
	"strings"

	"github.com/xiaoshicae/xactor/xpipeline"
)

// heatMethods 加热方式，primaryMethod 只从这里选
var heatMethods = []string{"bake", "roast", "grill", "fry", "saute", "boil", "simmer", "steam", "braise", "poach", "broil"}

// prepTechniques 备料手法
var prepTechniques = []string{"chop", "dice", "mince", "whisk", "knead", "marinate", "blend", "fold", "julienne", "emulsify", "temper"}

var allTechniques = slices.Concat(heatMethods, prepTechniques)

// advancedTechniques 出现时难度上调
var advancedTechniques = []string{"braise", "poach", "emulsify", "temper", "julienne", "knead"}

// TechniqueActor 从步骤中识别烹饪技法并评估难度
type TechniqueActor struct {
	baseActor
}

func NewTechniqueActor() *TechniqueActor {
	a := &TechniqueActor{}
	a.baseActor = baseActor{id: TechniqueID, name: "Cooking Method Analyzer", analyze: a.analyzeTechnique}
	return a
}

func (a *TechniqueActor) analyzeTechnique(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	steps, err := requireInstructions(d)
	if err != nil {
		return nil, err
	}

	techniques := make([]string, 0)
	seen := map[string]bool{}
	heatCount := map[string]int{}
	primary := ""
	for _, step := range steps {
		step = normalizeStep(step)
		for _, t := range allTechniques {
			n := strings.Count(step, t)
			if n == 0 {
				continue
			}
			if !seen[t] {
				seen[t] = true
				techniques = append(techniques, t)
			}
			if slices.Contains(heatMethods, t) {
				heatCount[t] += n
				if primary == "" || heatCount[t] > heatCount[primary] {
					primary = t
				}
			}
		}
	}
	if primary == "" {
		primary = "no-cook"
	}

	return xpipeline.Data{
		"techniques":    techniques,
		"primaryMethod": primary,
		"difficulty":    difficultyOf(len(steps), techniques),
	}, nil
}

// normalizeStep 小写并去掉常见重音，便于匹配 sauté
func normalizeStep(step string) string {
	return strings.ReplaceAll(strings.ToLower(step), "é", "e")
}

// difficultyOf 步骤数加技法数加权得分：< 8 easy，< 15 medium，其余 hard
func difficultyOf(steps int, techniques []string) string {
	score := steps + 2*len(techniques)
	for _, t := range techniques {
		if _, ok := containsAny(t, advancedTechniques); ok {
			score += 3
		}
	}
	switch {
	case score < 8:
		return "easy"
	case score < 15:
		return "medium"
	default:
		return "hard"
	}
}
