// Package xlog 基于 logrus 的结构化日志，json 落盘并按时间切割
package xlog

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xutil"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	logwriter "github.com/sirupsen/logrus/hooks/writer"
)

var findFrameIgnoreFileNames = []string{
	"/xlog/util.go",
	"/xlog/xlog_hook.go",
}

func init() {
	xhook.BeforeStart(initXLog, xhook.Order(2))
}

func initXLog() error {
	c := &Config{}
	if err := xconfig.UnmarshalConfig(XLogConfigKey, c); err != nil {
		return xerror.New("xlog", "init", err)
	}
	c = configMergeDefault(c)
	xutil.InfoIfEnableDebug("XActor initXLog got config: %s", xutil.ToJsonString(c))

	closer, err := initXLogByConfig(c)
	if err != nil {
		return err
	}
	xhook.BeforeStop(closer.Close, xhook.Order(1000))
	return nil
}

func initXLogByConfig(c *Config) (io.Closer, error) {
	if !xutil.DirExist(c.Path) {
		if err := os.MkdirAll(c.Path, os.ModePerm); err != nil {
			return nil, xerror.Newf("xlog", "init", "mkdir failed, path=[%s], err=[%w]", c.Path, err)
		}
	}

	logFilePath := filepath.Join(c.Path, c.Name+".log")
	rotateWriter, err := rotatelogs.New(
		logFilePath+".%Y%m%d",
		rotatelogs.WithLinkName(logFilePath),
		rotatelogs.WithMaxAge(xutil.ToDuration(c.MaxAge)),
		rotatelogs.WithRotationTime(xutil.ToDuration(c.RotateTime)),
	)
	if err != nil {
		return nil, xerror.Newf("xlog", "init", "create rotate writer failed, err=[%w]", err)
	}

	var fileWriter io.WriteCloser = rotateWriter
	if c.Async {
		fileWriter = newAsyncWriter(rotateWriter, defaultAsyncBufferSize)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		xutil.WarnIfEnableDebug("XActor initXLog load timezone [%s] failed, use Local, err=[%v]", c.Timezone, err)
		loc = time.Local
	}

	logrus.SetOutput(io.Discard)
	logrus.SetFormatter(timeFormatter{
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.999",
			CallerPrettyfier: func(*runtime.Frame) (string, string) {
				return "", ""
			},
		},
		Location: loc,
	})

	ip, _ := xutil.GetLocalIp()
	logrus.AddHook(&xLogHook{
		SuffixToIgnore:     findFrameIgnoreFileNames,
		ServerName:         xconfig.GetServerName(),
		IP:                 xutil.GetOrDefault(ip, "0.0.0.0"),
		Pid:                strconv.Itoa(os.Getpid()),
		Console:            c.Console,
		ConsoleFormatIsRaw: c.ConsoleFormatIsRaw,
		Writer:             os.Stdout,
	})
	logrus.AddHook(&logwriter.Hook{
		Writer:    fileWriter,
		LogLevels: resolveLevels(c.Level),
	})
	logrus.SetLevel(parseLevel(c.Level))
	return fileWriter, nil
}

func parseLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

// resolveLevels 返回 >= level 严重程度的所有级别
func resolveLevels(level string) []logrus.Level {
	l, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		l = logrus.InfoLevel
	}
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, lv := range logrus.AllLevels {
		if lv <= l {
			levels = append(levels, lv)
		}
	}
	return levels
}
