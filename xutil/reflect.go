package xutil

import (
	"reflect"
	"runtime"
	"strings"
)

// GetFuncName 获取函数名称，非函数返回空字符串
func GetFuncName(fc any) string {
	_, _, name := GetFuncInfo(fc)
	return name
}

// GetFuncInfo 获取函数的源文件路径、行号和名称
func GetFuncInfo(fc any) (file string, line int, name string) {
	if fc == nil {
		return "", 0, ""
	}
	f := reflect.ValueOf(fc)
	if f.Kind() != reflect.Func || f.IsNil() {
		return "", 0, ""
	}

	fn := runtime.FuncForPC(f.Pointer())
	if fn == nil {
		return "", 0, ""
	}

	fullName := fn.Name()
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	_, name, found := strings.Cut(fullName, ".")
	if !found {
		return "", 0, ""
	}

	file, line = fn.FileLine(f.Pointer())
	return file, line, name
}

// IsSlice 是否为slice类型
func IsSlice(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Slice
}
