package xrecipe

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload actor 收到的 payload 不是键值数据
var ErrInvalidPayload = errors.New("invalid payload")

// RecipeValidationError 菜谱数据不合法
type RecipeValidationError struct {
	Field  string
	Reason string
}

func (e *RecipeValidationError) Error() string {
	return fmt.Sprintf("recipe validation failed, field=[%s], reason=[%s]", e.Field, e.Reason)
}

func IsRecipeValidation(err error) bool {
	var e *RecipeValidationError
	return errors.As(err, &e)
}
