package xrecipe

import (
	"slices"
	"strings"

	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xutil"
)

// ValidUnits 支持的计量单位
var ValidUnits = []string{"g", "kg", "oz", "lb", "ml", "l", "cup", "tbsp", "tsp", "piece", "whole", "pinch", "dash"}

// ValidDietaryRestrictions 支持的饮食限制
var ValidDietaryRestrictions = []string{"vegetarian", "vegan", "gluten-free", "dairy-free", "nut-free", "low-carb", "keto", "paleo"}

type Ingredient struct {
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   string  `json:"unit" yaml:"unit"`
	Notes  string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Recipe 菜谱，ToData 后作为 pipeline 输入
type Recipe struct {
	ID                  string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name                string       `json:"name" yaml:"name"`
	Description         string       `json:"description,omitempty" yaml:"description,omitempty"`
	Ingredients         []Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions        []string     `json:"instructions" yaml:"instructions"`
	Category            string       `json:"category,omitempty" yaml:"category,omitempty"`
	Difficulty          string       `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	PrepTime            int          `json:"prepTime,omitempty" yaml:"prepTime,omitempty"` // 分钟
	CookTime            int          `json:"cookTime,omitempty" yaml:"cookTime,omitempty"` // 分钟
	Servings            int          `json:"servings,omitempty" yaml:"servings,omitempty"`
	Tags                []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	DietaryRestrictions []string     `json:"dietaryRestrictions,omitempty" yaml:"dietaryRestrictions,omitempty"`
	Season              string       `json:"season,omitempty" yaml:"season,omitempty"`
}

// Validate 校验并就地规整（去除空白，单位与标签转小写）
func (r *Recipe) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &RecipeValidationError{Field: "name", Reason: "can not be empty"}
	}
	if len(r.Name) > 200 {
		return &RecipeValidationError{Field: "name", Reason: "can not be longer than 200"}
	}
	if len(r.Ingredients) == 0 {
		return &RecipeValidationError{Field: "ingredients", Reason: "at least one ingredient is required"}
	}
	for i := range r.Ingredients {
		if err := r.Ingredients[i].validate(); err != nil {
			return err
		}
	}
	for i, step := range r.Instructions {
		step = strings.TrimSpace(step)
		if step == "" {
			return &RecipeValidationError{Field: "instructions", Reason: "can not contain empty steps"}
		}
		r.Instructions[i] = step
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return &RecipeValidationError{Field: "prepTime/cookTime", Reason: "can not be negative"}
	}
	if r.Servings < 0 {
		return &RecipeValidationError{Field: "servings", Reason: "can not be negative"}
	}

	tags := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	r.Tags = tags

	for i, d := range r.DietaryRestrictions {
		d = strings.ToLower(strings.TrimSpace(d))
		if !slices.Contains(ValidDietaryRestrictions, d) {
			return &RecipeValidationError{Field: "dietaryRestrictions", Reason: "invalid restriction " + d}
		}
		r.DietaryRestrictions[i] = d
	}
	if r.Season != "" {
		r.Season = strings.ToLower(r.Season)
		if !slices.Contains(seasons, r.Season) {
			return &RecipeValidationError{Field: "season", Reason: "invalid season " + r.Season}
		}
	}
	return nil
}

func (i *Ingredient) validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return &RecipeValidationError{Field: "ingredients.name", Reason: "can not be empty"}
	}
	if i.Amount <= 0 {
		return &RecipeValidationError{Field: "ingredients.amount", Reason: "must be positive, ingredient=" + i.Name}
	}
	i.Unit = strings.ToLower(strings.TrimSpace(i.Unit))
	if !slices.Contains(ValidUnits, i.Unit) {
		return &RecipeValidationError{Field: "ingredients.unit", Reason: "invalid unit " + i.Unit}
	}
	return nil
}

// ToData 转为只包含 map/slice/基础类型的 Data，便于表达式校验与 json 输出
func (r *Recipe) ToData() (xpipeline.Data, error) {
	m, err := xutil.ToMap(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}
