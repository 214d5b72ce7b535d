package xconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xutil"

	"github.com/spf13/viper"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
)

const baseYml = `
Server:
  Name: recipe.analyzer
  Profiles:
    Active: ${XACTOR_TEST_PROFILE:-dev}
XLog:
  Level: info
  Path: ./log
XPipeline:
  Timeout: 1d
`

const devYml = `
Server:
  Version: v1.2.3
XLog:
  Level: debug
`

func writeFile(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestServerConfigMergeDefault(t *testing.T) {
	PatchConvey("TestServerConfigMergeDefault-Nil", t, func() {
		So(serverConfigMergeDefault(nil), ShouldResemble, &Server{Version: "v0.0.1"})
	})

	PatchConvey("TestServerConfigMergeDefault-NotNil", t, func() {
		sc := &Server{Name: "1", Version: "2", Profiles: &Profiles{Active: "3"}}
		So(serverConfigMergeDefault(sc), ShouldResemble, &Server{Name: "1", Version: "2", Profiles: &Profiles{Active: "3"}})
	})
}

func TestLoad(t *testing.T) {
	PatchConvey("TestLoad-WithProfile", t, func() {
		defer SetViper(nil)

		dir := t.TempDir()
		location := writeFile(t, dir, "application.yml", baseYml)
		writeFile(t, dir, "application-dev.yml", devYml)

		So(Load(location), ShouldBeNil)
		So(GetServerName(), ShouldEqual, "recipe.analyzer")
		So(GetServerVersion(), ShouldEqual, "v1.2.3")
		So(GetString("XLog.Level"), ShouldEqual, "debug")
		So(ContainKey("XLog.Path"), ShouldBeFalse) // 一级配置整体覆盖
		So(GetDuration("XPipeline.Timeout"), ShouldEqual, 24*time.Hour)

		s := &Server{}
		So(UnmarshalConfig(ServerConfigKey, s), ShouldBeNil)
		So(s.Name, ShouldEqual, "recipe.analyzer")
	})

	PatchConvey("TestLoad-ProfileMissing", t, func() {
		defer SetViper(nil)
		defer os.Unsetenv(profilesActiveEnvKey)
		_ = os.Setenv(profilesActiveEnvKey, "prod")

		dir := t.TempDir()
		location := writeFile(t, dir, "application.yml", baseYml)

		err := Load(location)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "application-prod.yml")
	})

	PatchConvey("TestLoad-DotEnv", t, func() {
		defer SetViper(nil)
		defer os.Unsetenv("XACTOR_TEST_NAME")

		dir := t.TempDir()
		writeFile(t, dir, ".env", "XACTOR_TEST_NAME=from.dotenv\n")
		location := writeFile(t, dir, "application.yml", "Server:\n  Name: ${XACTOR_TEST_NAME}\n")

		So(Load(location), ShouldBeNil)
		So(GetServerName(), ShouldEqual, "from.dotenv")
	})
}

func TestDetectConfigLocation(t *testing.T) {
	PatchConvey("TestDetectConfigLocation-Arg", t, func() {
		Mock(xutil.GetConfigFromArgs).Return("/a/application.yml", nil).Build()
		So(detectConfigLocation(), ShouldEqual, "/a/application.yml")
	})

	PatchConvey("TestDetectConfigLocation-Env", t, func() {
		defer os.Unsetenv(configLocationEnvKey)
		_ = os.Setenv(configLocationEnvKey, "/b/application.yml")
		So(detectConfigLocation(), ShouldEqual, "/b/application.yml")
	})

	PatchConvey("TestDetectConfigLocation-NotFound", t, func() {
		So(detectConfigLocation(), ShouldEqual, "")
	})
}

func TestExpandEnvPlaceholders(t *testing.T) {
	PatchConvey("TestExpandEnvPlaceholders", t, func() {
		t.Setenv("XACTOR_TEST_HOST", "10.0.0.1")

		vp := viper.New()
		vp.Set("XHttp.Host", "http://${XACTOR_TEST_HOST}:${XACTOR_TEST_PORT:-8080}")
		vp.Set("XHttp.Retry", 3)
		expandEnvPlaceholders(vp)

		So(vp.GetString("XHttp.Host"), ShouldEqual, "http://10.0.0.1:8080")
		So(vp.GetInt("XHttp.Retry"), ShouldEqual, 3)
	})
}

func TestToProfilesActiveConfigLocation(t *testing.T) {
	PatchConvey("TestToProfilesActiveConfigLocation", t, func() {
		_, err := toProfilesActiveConfigLocation("x", "a")
		So(err, ShouldNotBeNil)

		loc, err := toProfilesActiveConfigLocation("./conf/application.yml", "dev")
		So(err, ShouldBeNil)
		So(loc, ShouldEqual, "./conf/application-dev.yml")
	})
}

func TestUnmarshalConfigParam(t *testing.T) {
	PatchConvey("TestUnmarshalConfigParam", t, func() {
		So(UnmarshalConfig("", &Server{}), ShouldNotBeNil)
		So(UnmarshalConfig("Server", Server{}), ShouldNotBeNil)
		So(UnmarshalConfig("Server", nil), ShouldNotBeNil)
	})
}
