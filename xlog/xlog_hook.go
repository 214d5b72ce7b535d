package xlog

import (
	"context"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/xiaoshicae/xactor/xutil"

	"github.com/sirupsen/logrus"
)

const (
	colorRed    = 31
	colorYellow = 33
	colorBlue   = 36
	colorGray   = 37
)

// xLogHook 补充公共字段(servername/ip/pid/caller/trace)，并按需打印到控制台
type xLogHook struct {
	IP                 string
	ServerName         string
	Pid                string
	SuffixToIgnore     []string
	Console            bool
	ConsoleFormatIsRaw bool
	Writer             io.Writer
}

func (m *xLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (m *xLogHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["servername"]; !ok {
		entry.Data["servername"] = m.ServerName
	}
	entry.Data["ip"] = m.IP
	entry.Data["pid"] = m.Pid

	caller := entry.Caller
	if caller == nil {
		caller = xutil.GetLogCaller(0, m.SuffixToIgnore)
	}
	if caller != nil {
		entry.Data["filename"] = path.Base(caller.File)
		entry.Data["lineid"] = strconv.Itoa(caller.Line)
	}

	entry.Data["traceid"] = xutil.GetTraceIDFromCtx(entry.Context)
	entry.Data["spanid"] = xutil.GetSpanIDFromCtx(entry.Context)

	for k, v := range getXLogContainerFromCtx(entry.Context) {
		entry.Data[k] = v
	}

	if !m.Console {
		return nil
	}
	return m.consolePrint(entry, caller)
}

func (m *xLogHook) consolePrint(entry *logrus.Entry, caller *runtime.Frame) error {
	var msg []byte
	if m.ConsoleFormatIsRaw {
		line, err := entry.Bytes()
		if err != nil {
			return err
		}
		msg = line
	} else {
		msg = fmt.Appendf(nil, "\x1b[%dm%s\x1b[0m[%s] \x1b[34m%s\x1b[0m %v %s\n",
			levelColor(entry.Level),
			strings.ToUpper(entry.Level.String()),
			entry.Time.Format("2006-01-02 15:04:05.999"),
			callerPretty(caller),
			entry.Data["traceid"],
			entry.Message,
		)
	}
	_, err := m.Writer.Write(msg)
	return err
}

// timeFormatter 拷贝 entry 后转换时区再交给底层 Formatter
type timeFormatter struct {
	logrus.Formatter
	Location *time.Location
}

func (t timeFormatter) Format(e *logrus.Entry) ([]byte, error) {
	entry := *e
	if entry.Context == nil {
		entry.Context = context.Background()
	}
	if t.Location != nil {
		entry.Time = entry.Time.In(t.Location)
	}
	return t.Formatter.Format(&entry)
}

func levelColor(l logrus.Level) int {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorGray
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	default:
		return colorBlue
	}
}

func callerPretty(f *runtime.Frame) string {
	if f == nil {
		return "???"
	}
	return fmt.Sprintf("%s:%d", path.Base(f.File), f.Line)
}
