package xpipeline

import (
	"context"
	"reflect"
)

// Validator stage 执行前对当前数据的校验，返回 false 时 pipeline 失败
type Validator func(data Data) bool

// ErrorHook stage 的 actor 执行失败时调用，之后错误照常返回给调用方
type ErrorHook func(ctx context.Context, err error)

// Stage pipeline 中的一步，将当前数据交给 ActorID 对应的 actor 处理
type Stage struct {
	Name     string
	ActorID  string
	Validate Validator
	OnError  ErrorHook
}

type StageOption func(*Stage)

func WithValidator(v Validator) StageOption {
	return func(s *Stage) {
		s.Validate = v
	}
}

func WithErrorHook(h ErrorHook) StageOption {
	return func(s *Stage) {
		s.OnError = h
	}
}

// NewStage name 为空时使用 actorID
func NewStage(name, actorID string, opts ...StageOption) Stage {
	if name == "" {
		name = actorID
	}
	s := Stage{Name: name, ActorID: actorID}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s Stage) valid(d Data) bool {
	return s.Validate == nil || s.Validate(d)
}

// NonEmpty 校验 keys 均存在且非空（空字符串、空 slice、空 map 视为空）
func NonEmpty(keys ...string) Validator {
	return func(d Data) bool {
		for _, k := range keys {
			if isEmpty(d[k]) {
				return false
			}
		}
		return true
	}
}

// All 所有校验都通过
func All(validators ...Validator) Validator {
	return func(d Data) bool {
		for _, v := range validators {
			if v != nil && !v(d) {
				return false
			}
		}
		return true
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
