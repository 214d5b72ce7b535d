package xpipeline

import (
	"errors"
	"fmt"
)

// ErrProcessTimeout 调用方等待超时，pipeline 可能仍在后台执行
var ErrProcessTimeout = errors.New("pipeline process timeout")

// ErrInvalidProvenance 输入中的 processedBy 无法解析为来源记录
var ErrInvalidProvenance = errors.New("invalid " + ProcessedByKey)

// StageValidationError stage 前置校验未通过，该 stage 及之后的 stage 均未执行
type StageValidationError struct {
	Pipeline string
	Stage    string
}

func (e *StageValidationError) Error() string {
	return fmt.Sprintf("stage validation failed, pipeline=[%s], stage=[%s]", e.Pipeline, e.Stage)
}

// StepError stage 执行失败，Err 为 xactor 的 dispatch 错误或 MergeError
type StepError struct {
	Pipeline string
	Stage    string
	ActorID  string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipeline=[%s], stage=[%s], actor=[%s], err=[%v]", e.Pipeline, e.Stage, e.ActorID, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// MergeError actor 返回的结果无法作为键值合并
type MergeError struct {
	ActorID    string
	ResultType string
	Err        error
}

func (e *MergeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("merge result failed, actor=[%s], type=[%s], err=[%v]", e.ActorID, e.ResultType, e.Err)
	}
	return fmt.Sprintf("merge result failed, actor=[%s], type=[%s]", e.ActorID, e.ResultType)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// IsStageValidation err 链中是否存在 StageValidationError
func IsStageValidation(err error) bool {
	var e *StageValidationError
	return errors.As(err, &e)
}
