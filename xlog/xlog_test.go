package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/mockey"
	"github.com/sirupsen/logrus"
	c "github.com/smartystreets/goconvey/convey"
)

type nopCloser struct {
	bytes.Buffer
	closed bool
}

func (n *nopCloser) Close() error {
	n.closed = true
	return nil
}

func TestXLogConfig(t *testing.T) {
	mockey.PatchConvey("TestXLogConfig-configMergeDefault-Nil", t, func() {
		c.So(configMergeDefault(nil), c.ShouldResemble, &Config{
			Level:      "info",
			Name:       "app",
			Path:       "./log",
			MaxAge:     "7d",
			RotateTime: "1d",
			Timezone:   "Asia/Shanghai",
		})
	})

	mockey.PatchConvey("TestXLogConfig-configMergeDefault-NotNil", t, func() {
		config := &Config{Level: "1", Name: "2", Path: "3", Console: true, Async: true, MaxAge: "4", RotateTime: "5", Timezone: "UTC"}
		c.So(configMergeDefault(config), c.ShouldResemble, &Config{Level: "1", Name: "2", Path: "3", Console: true, Async: true, MaxAge: "4", RotateTime: "5", Timezone: "UTC"})
	})
}

func TestResolveLevels(t *testing.T) {
	mockey.PatchConvey("TestResolveLevels", t, func() {
		c.So(resolveLevels("error"), c.ShouldResemble, []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel})
		c.So(len(resolveLevels("debug")), c.ShouldEqual, 6)
		c.So(len(resolveLevels("unknown")), c.ShouldEqual, 5)
		c.So(parseLevel("bad"), c.ShouldEqual, logrus.InfoLevel)
	})
}

func TestCtxWithKV(t *testing.T) {
	mockey.PatchConvey("TestCtxWithKV", t, func() {
		parent := CtxWithKV(context.Background(), map[string]any{"a": 1})
		child := CtxWithKV(parent, map[string]any{"b": 2})

		c.So(getXLogContainerFromCtx(parent), c.ShouldResemble, map[string]any{"a": 1})
		c.So(getXLogContainerFromCtx(child), c.ShouldResemble, map[string]any{"a": 1, "b": 2})
		c.So(getXLogContainerFromCtx(context.Background()), c.ShouldBeNil)
	})
}

func TestXLogHook(t *testing.T) {
	mockey.PatchConvey("TestXLogHook-Fire", t, func() {
		buf := &bytes.Buffer{}
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		logger.SetFormatter(timeFormatter{Formatter: &logrus.JSONFormatter{}})
		logger.AddHook(&xLogHook{
			ServerName:         "recipe.analyzer",
			IP:                 "127.0.0.1",
			Pid:                "1",
			Console:            true,
			ConsoleFormatIsRaw: true,
			Writer:             buf,
		})

		ctx := CtxWithKV(context.Background(), map[string]any{"pipeline": "Recipe Processing"})
		logger.WithContext(ctx).Info("hello")

		m := map[string]any{}
		c.So(json.Unmarshal(buf.Bytes(), &m), c.ShouldBeNil)
		c.So(m["msg"], c.ShouldEqual, "hello")
		c.So(m["servername"], c.ShouldEqual, "recipe.analyzer")
		c.So(m["pipeline"], c.ShouldEqual, "Recipe Processing")
		c.So(m["traceid"], c.ShouldEqual, "")
	})

	mockey.PatchConvey("TestXLogHook-PrettyConsole", t, func() {
		buf := &bytes.Buffer{}
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		logger.AddHook(&xLogHook{Console: true, Writer: buf})
		logger.Warn("careful")
		c.So(buf.String(), c.ShouldContainSubstring, "WARNING")
		c.So(buf.String(), c.ShouldContainSubstring, "careful")
	})
}

func TestAsyncWriter(t *testing.T) {
	mockey.PatchConvey("TestAsyncWriter", t, func() {
		w := &nopCloser{}
		aw := newAsyncWriter(w, 0)

		n, err := aw.Write([]byte("line1\n"))
		c.So(err, c.ShouldBeNil)
		c.So(n, c.ShouldEqual, 6)
		_, _ = aw.Write([]byte("line2\n"))

		c.So(aw.Close(), c.ShouldBeNil)
		c.So(aw.Close(), c.ShouldBeNil)
		c.So(w.String(), c.ShouldEqual, "line1\nline2\n")
		c.So(w.closed, c.ShouldBeTrue)

		_, err = aw.Write([]byte("late"))
		c.So(errors.Is(err, io.ErrClosedPipe), c.ShouldBeTrue)
	})
}

func TestInitXLogByConfig(t *testing.T) {
	mockey.PatchConvey("TestInitXLogByConfig", t, func() {
		dir := filepath.Join(t.TempDir(), "logs")
		hooks := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
		defer logrus.StandardLogger().ReplaceHooks(hooks)
		defer logrus.SetOutput(os.Stderr)

		closer, err := initXLogByConfig(configMergeDefault(&Config{Path: dir, Name: "xactor", Timezone: "UTC"}))
		c.So(err, c.ShouldBeNil)
		c.So(closer, c.ShouldNotBeNil)

		Info(context.Background(), "pipeline=[%s] done", "Meal Planning", KV("stages", 4))
		c.So(closer.Close(), c.ShouldBeNil)

		b, err := os.ReadFile(filepath.Join(dir, "xactor.log"))
		c.So(err, c.ShouldBeNil)
		c.So(string(b), c.ShouldContainSubstring, "pipeline=[Meal Planning] done")
		c.So(string(b), c.ShouldContainSubstring, `"stages":4`)
	})
}
