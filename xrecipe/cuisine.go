package xrecipe

import (
	"context"
	"strings"

	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"
)

const unknownCuisine = "international"

type cuisineProfile struct {
	Name       string
	Signatures []string // 配料及步骤中的特征词
	Suggestion string
}

// cuisineProfiles 顺序决定同分时的优先级
var cuisineProfiles = []cuisineProfile{
	{
		Name:       "italian",
		Signatures: []string{"pasta", "parmesan", "basil", "olive oil", "mozzarella", "oregano", "risotto", "al dente"},
		Suggestion: "Finish with fresh basil and a drizzle of good olive oil",
	},
	{
		Name:       "mexican",
		Signatures: []string{"tortilla", "cumin", "jalapeno", "cilantro", "avocado", "black bean", "salsa", "chipotle"},
		Suggestion: "Serve with fresh lime wedges and salsa",
	},
	{
		Name:       "japanese",
		Signatures: []string{"miso", "nori", "sake", "mirin", "wasabi", "dashi", "sushi rice", "panko"},
		Suggestion: "Balance the umami with pickled vegetables on the side",
	},
	{
		Name:       "indian",
		Signatures: []string{"garam masala", "turmeric", "curry", "ghee", "cardamom", "paneer", "naan", "tandoori"},
		Suggestion: "Temper whole spices in hot ghee to deepen the flavor",
	},
	{
		Name:       "chinese",
		Signatures: []string{"soy sauce", "ginger", "scallion", "sesame oil", "hoisin", "shaoxing", "bok choy", "wok", "stir-fry"},
		Suggestion: "Cook over very high heat and add aromatics last",
	},
	{
		Name:       "french",
		Signatures: []string{"shallot", "white wine", "thyme", "tarragon", "dijon", "creme fraiche", "gruyere", "deglaze"},
		Suggestion: "Deglaze the pan and mount the sauce with cold butter",
	},
	{
		Name:       "thai",
		Signatures: []string{"fish sauce", "lemongrass", "coconut milk", "galangal", "thai basil", "kaffir lime", "palm sugar"},
		Suggestion: "Adjust the balance of sour, sweet, salty and spicy at the end",
	},
}

// CuisineActor 按特征词命中数判断菜系
type CuisineActor struct {
	baseActor
}

func NewCuisineActor() *CuisineActor {
	a := &CuisineActor{}
	a.baseActor = baseActor{id: CuisineID, name: "Cuisine Analyzer", analyze: a.analyzeCuisine}
	return a
}

func (a *CuisineActor) analyzeCuisine(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	ings, err := requireIngredients(d)
	if err != nil {
		return nil, err
	}
	steps, err := requireInstructions(d)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, ing := range ings {
		sb.WriteString(strings.ToLower(ing.Name))
		sb.WriteString("\n")
	}
	for _, s := range steps {
		sb.WriteString(normalizeStep(s))
		sb.WriteString("\n")
	}
	text := sb.String()

	best, bestScore, total := unknownCuisine, 0, 0
	suggestion := "Season to taste and serve with a simple side salad"
	for _, p := range cuisineProfiles {
		score := 0
		for _, s := range p.Signatures {
			if strings.Contains(text, s) {
				score++
			}
		}
		total += score
		if score > bestScore {
			best, bestScore, suggestion = p.Name, score, p.Suggestion
		}
	}

	confidence := 0.0
	if total > 0 {
		confidence = xutil.Round1(float64(bestScore) / float64(total))
	}
	return xpipeline.Data{
		"cuisine":           best,
		"cuisineConfidence": confidence,
		"recommendations":   nestedWith(d, "recommendations", "cuisine", []string{suggestion}),
	}, nil
}
