package xrecipe

import (
	"context"
	"slices"

	"github.com/xiaoshicae/xactor/xpipeline"

	"github.com/spf13/cast"
)

var (
	meatIngredients   = []string{"chicken", "beef", "pork", "lamb", "bacon", "ham", "turkey", "sausage", "gelatin", "anchov", "fish", "salmon", "tuna", "shrimp", "prawn", "crab", "lobster"}
	animalIngredients = []string{"egg", "milk", "butter", "cheese", "cream", "yogurt", "honey", "ghee", "mayonnaise"}
	glutenIngredients = []string{"flour", "wheat", "pasta", "bread", "barley", "rye", "couscous", "noodle", "breadcrumb", "soy sauce"}
	dairyIngredients  = []string{"milk", "butter", "cheese", "cream", "yogurt", "ghee"}
	nutIngredients    = []string{"almond", "walnut", "peanut", "cashew", "pecan", "hazelnut", "pistachio", "macadamia"}
	highCarbKeywords  = []string{"flour", "sugar", "rice", "pasta", "bread", "potato", "noodle", "corn"}
)

// allergenKeywords 过敏原 -> 关键词
var allergenKeywords = []struct {
	Allergen string
	Keywords []string
}{
	{"gluten", glutenIngredients},
	{"dairy", dairyIngredients},
	{"eggs", []string{"egg", "mayonnaise"}},
	{"nuts", nutIngredients},
	{"fish", []string{"fish", "salmon", "tuna", "anchov", "cod"}},
	{"shellfish", []string{"shrimp", "prawn", "crab", "lobster", "mussel", "clam"}},
	{"soy", []string{"soy", "tofu", "edamame", "miso"}},
}

var dietaryAlternatives = map[string][]string{
	"butter":    {"vegan butter", "olive oil"},
	"milk":      {"oat milk", "almond milk"},
	"cheese":    {"nutritional yeast"},
	"cream":     {"coconut cream"},
	"egg":       {"flax egg"},
	"flour":     {"rice flour", "almond flour"},
	"pasta":     {"rice noodles", "zucchini noodles"},
	"soy sauce": {"tamari", "coconut aminos"},
	"honey":     {"maple syrup"},
	"chicken":   {"tofu"},
	"beef":      {"lentils", "mushrooms"},
}

var dietaryAlternativeKeys = sortedKeys(dietaryAlternatives)

// DietaryActor 识别饮食标签、过敏原，并检查 data.dietaryRestrictions
type DietaryActor struct {
	baseActor
}

func NewDietaryActor() *DietaryActor {
	a := &DietaryActor{}
	a.baseActor = baseActor{id: DietaryID, name: "Dietary Analyzer", analyze: a.analyzeDietary}
	return a
}

func (a *DietaryActor) analyzeDietary(_ context.Context, d xpipeline.Data) (xpipeline.Data, error) {
	ings, err := requireIngredients(d)
	if err != nil {
		return nil, err
	}

	has := func(keywords []string) bool {
		for _, ing := range ings {
			if _, ok := containsAny(ing.Name, keywords); ok {
				return true
			}
		}
		return false
	}

	vegetarian := !has(meatIngredients)
	tags := make([]string, 0, 5)
	if vegetarian {
		tags = append(tags, "vegetarian")
	}
	if vegetarian && !has(animalIngredients) {
		tags = append(tags, "vegan")
	}
	if !has(glutenIngredients) {
		tags = append(tags, "gluten-free")
	}
	if !has(dairyIngredients) {
		tags = append(tags, "dairy-free")
	}
	if !has(nutIngredients) {
		tags = append(tags, "nut-free")
	}
	if !has(highCarbKeywords) {
		tags = append(tags, "low-carb")
	}

	allergens := make([]string, 0)
	for _, al := range allergenKeywords {
		if has(al.Keywords) {
			allergens = append(allergens, al.Allergen)
		}
	}

	alternatives := map[string][]string{}
	for _, ing := range ings {
		if key, ok := containsAny(ing.Name, dietaryAlternativeKeys); ok {
			alternatives[ing.Name] = dietaryAlternatives[key]
		}
	}

	out := xpipeline.Data{
		"dietaryTags":  tags,
		"allergens":    allergens,
		"alternatives": mergeAlternatives(d, alternatives),
	}

	// 只校验可由配料推断的限制，keto/paleo 不参与
	if raw, ok := d["dietaryRestrictions"]; ok {
		violations := make([]string, 0)
		for _, r := range cast.ToStringSlice(raw) {
			if inferable(r) && !slices.Contains(tags, r) {
				violations = append(violations, r)
			}
		}
		out["restrictionViolations"] = violations
		out["meetsRestrictions"] = len(violations) == 0
	}
	return out, nil
}

func inferable(restriction string) bool {
	switch restriction {
	case "vegetarian", "vegan", "gluten-free", "dairy-free", "nut-free", "low-carb":
		return true
	default:
		return false
	}
}
