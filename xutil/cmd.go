package xutil

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	argKeyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.-]*$`)

	ErrArgNotFound = errors.New("arg not found")
)

// GetConfigFromArgs 从启动命令获取指定参数，支持 --key value 与 --key=value
func GetConfigFromArgs(key string) (string, error) {
	if !argKeyPattern.MatchString(key) {
		return "", fmt.Errorf("key must match regexp: %s", argKeyPattern.String())
	}

	args := GetOsArgs()
	for i, arg := range args {
		arg = strings.TrimLeft(arg, "-")
		if arg == key {
			if i+1 == len(args) {
				return "", fmt.Errorf("%w, value of [%s] not set", ErrArgNotFound, key)
			}
			return args[i+1], nil
		}
		if v, ok := strings.CutPrefix(arg, key+"="); ok {
			return v, nil
		}
	}
	return "", ErrArgNotFound
}

// GetOsArgs 获取启动命令参数（排除程序名）
func GetOsArgs() []string {
	if len(os.Args) <= 1 {
		return nil
	}
	return os.Args[1:]
}
