package xrecipe

import (
	"context"
	"strings"
	"time"

	"github.com/xiaoshicae/xactor/xpipeline"

	"github.com/spf13/cast"
)

var seasons = []string{"spring", "summer", "autumn", "winter"}

// seasonalProduce 北半球应季食材
var seasonalProduce = map[string][]string{
	"spring": {"asparagus", "peas", "strawberr", "spinach", "radish", "artichoke", "rhubarb"},
	"summer": {"tomato", "zucchini", "corn", "blueberr", "cucumber", "peach", "basil", "eggplant"},
	"autumn": {"pumpkin", "apple", "squash", "mushroom", "pear", "sweet potato", "grape"},
	"winter": {"cabbage", "kale", "orange", "leek", "parsnip", "brussels sprout", "lemon"},
}

var now = time.Now

// seasonOf 按北半球月份划分
func seasonOf(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}

// SeasonalityActor 判断配料是否应季，季节取 data.season，未指定时取当前月份
type SeasonalityActor struct {
	baseActor
}

func NewSeasonalityActor() *SeasonalityActor {
	a := &SeasonalityActor{}
	a.baseActor = baseActor{id: SeasonalityID, name: "Seasonality Analyzer", analyze: a.analyzeSeasonality}
	return a
}

func (a *SeasonalityActor) analyzeSeasonality(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	ings, err := requireIngredients(d)
	if err != nil {
		return nil, err
	}

	season := strings.ToLower(strings.TrimSpace(cast.ToString(d["season"])))
	if _, ok := seasonalProduce[season]; !ok {
		season = seasonOf(now())
	}

	inSeason, outOfSeason := make([]string, 0), make([]string, 0)
	for _, ing := range ings {
		s, ok := produceSeason(ing.Name)
		if !ok {
			continue
		}
		if s == season {
			inSeason = append(inSeason, ing.Name)
		} else {
			outOfSeason = append(outOfSeason, ing.Name)
		}
	}

	// 没有时令农产品时不扣分
	score := 100
	if produce := len(inSeason) + len(outOfSeason); produce > 0 {
		score = len(inSeason) * 100 / produce
	}

	return xpipeline.Data{
		"season":              season,
		"seasonalIngredients": inSeason,
		"outOfSeason":         outOfSeason,
		"seasonalityScore":    score,
	}, nil
}

func produceSeason(name string) (string, bool) {
	for _, s := range seasons {
		if _, ok := containsAny(name, seasonalProduce[s]); ok {
			return s, true
		}
	}
	return "", false
}
