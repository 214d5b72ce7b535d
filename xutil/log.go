package xutil

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// 框架启动过程中的 debug 日志，只输出到屏幕，由 XACTOR_ENABLE_DEBUG 控制

const (
	currentFilePath    = "/xutil/log.go"
	maximumCallerDepth = 25
	minimumCallerDepth = 5 // logrus.entry.go
)

var (
	logger = newDebugLogger()

	ignoredCallerFileRegs = compileRegs(
		`logrus(|@v.*)/hooks\.go`,
		`logrus(|@v.*)/entry\.go`,
		`logrus(|@v.*)/logger\.go`,
		`logrus(|@v.*)/exported\.go`,
		`asm_amd64\.s`,
	)
)

func ErrorIfEnableDebug(msg string, args ...any) {
	LogIfEnableDebug(logrus.ErrorLevel, msg, args...)
}

func InfoIfEnableDebug(msg string, args ...any) {
	LogIfEnableDebug(logrus.InfoLevel, msg, args...)
}

func WarnIfEnableDebug(msg string, args ...any) {
	LogIfEnableDebug(logrus.WarnLevel, msg, args...)
}

func LogIfEnableDebug(level logrus.Level, msg string, args ...any) {
	if EnableDebug() {
		logger.Logf(level, msg, args...)
	}
}

// GetLogCaller 获取真实的调用方，跳过 suffixToIgnore 及日志库自身的栈帧
func GetLogCaller(callDepth int, suffixToIgnore []string) (frame *runtime.Frame) {
	pcs := make([]uintptr, maximumCallerDepth)
	depth := runtime.Callers(minimumCallerDepth+callDepth, pcs)
	frames := runtime.CallersFrames(pcs[:depth])
OUTER:
	for f, hasMore := frames.Next(); hasMore; f, hasMore = frames.Next() {
		frame = &f
		for _, s := range suffixToIgnore {
			if strings.HasSuffix(f.File, s) {
				continue OUTER
			}
		}
		for _, r := range ignoredCallerFileRegs {
			if r.MatchString(f.File) {
				continue OUTER
			}
		}
		break
	}
	return
}

func callerPretty(_ *runtime.Frame) (string, string) {
	frame := GetLogCaller(0, []string{currentFilePath})
	if frame == nil {
		return "", " ???"
	}
	fileName := fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
	return "", fmt.Sprintf(" \x1b[34m%s\x1b[0m", fileName)
}

func newDebugLogger() *logrus.Logger {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		ForceColors:      true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05.999",
		CallerPrettyfier: callerPretty,
	}
	l.SetReportCaller(true)
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stdout)
	return l
}

func compileRegs(patterns ...string) []*regexp.Regexp {
	regs := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		regs = append(regs, regexp.MustCompile(p))
	}
	return regs
}
