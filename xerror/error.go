// Package xerror 提供框架统一错误类型
package xerror

import (
	"errors"
	"fmt"
)

// Error 框架级错误，包含模块名、操作名和原始错误
type Error struct {
	Module string // 模块名，如 "xconfig", "xpipeline"
	Op     string // 操作名，如 "init", "build"
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("XActor %s %s failed, err=[%v]", e.Module, e.Op, e.Err)
	}
	return fmt.Sprintf("XActor %s %s failed", e.Module, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建 Error
func New(module, op string, err error) *Error {
	return &Error{Module: module, Op: op, Err: err}
}

// Newf 创建带格式化消息的 Error，format 中的 %w 会被保留用于 errors.Is
func Newf(module, op, format string, args ...any) *Error {
	return &Error{Module: module, Op: op, Err: fmt.Errorf(format, args...)}
}

// Is 判断 err 链中是否包含指定模块的 Error
func Is(err error, module string) bool {
	return Module(err) == module && module != ""
}

// Module 从 err 链中提取模块名，非 Error 返回空字符串
func Module(err error) string {
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Module
	}
	return ""
}
