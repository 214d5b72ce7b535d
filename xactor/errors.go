package xactor

import (
	"errors"
	"fmt"
)

// ErrInvalidActor actor 为 nil 或 ID 为空
var ErrInvalidActor = errors.New("invalid actor")

// ActorNotFoundError 收件人未注册
type ActorNotFoundError struct {
	ActorID string
}

func (e *ActorNotFoundError) Error() string {
	return fmt.Sprintf("actor not found, id=[%s]", e.ActorID)
}

// DuplicateActorError 同一 ID 重复注册
type DuplicateActorError struct {
	ActorID string
}

func (e *DuplicateActorError) Error() string {
	return fmt.Sprintf("actor already registered, id=[%s]", e.ActorID)
}

// ActorExecutionError actor 处理失败（返回错误或 panic）
type ActorExecutionError struct {
	ActorID string
	Err     error
}

func (e *ActorExecutionError) Error() string {
	return fmt.Sprintf("actor execution failed, id=[%s], err=[%v]", e.ActorID, e.Err)
}

func (e *ActorExecutionError) Unwrap() error {
	return e.Err
}

// IsActorNotFound err 链中是否存在 ActorNotFoundError
func IsActorNotFound(err error) bool {
	var e *ActorNotFoundError
	return errors.As(err, &e)
}

// IsActorExecution err 链中是否存在 ActorExecutionError
func IsActorExecution(err error) bool {
	var e *ActorExecutionError
	return errors.As(err, &e)
}
