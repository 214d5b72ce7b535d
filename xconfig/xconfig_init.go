// Package xconfig 基于 viper 加载 application.yml，支持多环境覆盖与环境变量占位符
package xconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xutil"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configLocationArgKey = "server.config.location"
	configLocationEnvKey = "SERVER_CONFIG_LOCATION"

	profilesActiveArgKey    = "server.profiles.active"
	profilesActiveEnvKey    = "SERVER_PROFILES_ACTIVE"
	profilesActiveConfigKey = "Server.Profiles.Active"

	dotEnvFileName = ".env"
)

// 按优先级排序的默认配置文件路径
var configLocationPaths = []string{
	"./application.yml",
	"./application.yaml",
	"./conf/application.yml",
	"./conf/application.yaml",
	"./config/application.yml",
	"./config/application.yaml",
}

// ${VAR} 或 ${VAR:-default}
var envPlaceholderRegex = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func init() {
	xhook.BeforeStart(initXConfig, xhook.Order(1))
}

func initXConfig() error {
	location := detectConfigLocation()
	if location == "" {
		xutil.WarnIfEnableDebug("XActor initXConfig config file location not found, use default config")
		return nil
	}
	return Load(location)
}

// Load 加载指定路径的配置文件并替换全局配置
func Load(location string) error {
	if err := loadDotEnvIfExist(location); err != nil {
		return xerror.Newf("xconfig", "init", "load .env failed, err=[%w]", err)
	}

	vp, err := parseConfig(location)
	if err != nil {
		return xerror.Newf("xconfig", "init", "parse config failed, location=[%s], err=[%w]", location, err)
	}

	if xutil.EnableDebug() {
		fmt.Printf("\n****************** XActor load config ******************\n%s\n\n", xutil.ToJsonStringIndent(vp.AllSettings()))
	}

	SetViper(vp)
	return nil
}

func detectConfigLocation() string {
	if loc, _ := xutil.GetConfigFromArgs(configLocationArgKey); loc != "" {
		xutil.InfoIfEnableDebug("XActor detect config location [%s] from arg", loc)
		return loc
	}
	if loc := os.Getenv(configLocationEnvKey); loc != "" {
		xutil.InfoIfEnableDebug("XActor detect config location [%s] from env", loc)
		return loc
	}
	for _, loc := range configLocationPaths {
		if xutil.FileExist(loc) {
			xutil.InfoIfEnableDebug("XActor detect config location [%s] from current dir", loc)
			return loc
		}
	}
	return ""
}

func detectProfilesActive(vp *viper.Viper) string {
	if pa, _ := xutil.GetConfigFromArgs(profilesActiveArgKey); pa != "" {
		return pa
	}
	if pa := os.Getenv(profilesActiveEnvKey); pa != "" {
		return pa
	}
	if vp == nil {
		return ""
	}
	return vp.GetString(profilesActiveConfigKey)
}

func loadDotEnvIfExist(location string) error {
	p := filepath.Join(filepath.Dir(location), dotEnvFileName)
	if !xutil.FileExist(p) {
		return nil
	}
	return godotenv.Load(p)
}

func parseConfig(location string) (*viper.Viper, error) {
	base, err := readConfigFile(location)
	if err != nil {
		return nil, err
	}

	// 占位符需要先展开，Profiles.Active 本身可能就是 ${ENV}
	expandEnvPlaceholders(base)

	if pa := detectProfilesActive(base); pa != "" {
		profileLocation, err := toProfilesActiveConfigLocation(location, pa)
		if err != nil {
			return nil, err
		}
		profile, err := readConfigFile(profileLocation)
		if err != nil {
			return nil, fmt.Errorf("load profile config failed, location=[%s], err=[%w]", profileLocation, err)
		}
		expandEnvPlaceholders(profile)
		base = mergeProfile(base, profile)
	}

	if base.GetString(serverNameConfigKey) == "" {
		xutil.WarnIfEnableDebug("XActor config Server.Name should not be empty")
	}
	return base, nil
}

func readConfigFile(location string) (*viper.Viper, error) {
	vp := viper.New()
	vp.SetConfigFile(location)
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}
	return vp, nil
}

// toProfilesActiveConfigLocation application.yml -> application-<pa>.yml
func toProfilesActiveConfigLocation(location, pa string) (string, error) {
	ext := filepath.Ext(location)
	if ext == "" {
		return "", fmt.Errorf("config file name is invalid, location=[%s]", location)
	}
	return strings.TrimSuffix(location, ext) + "-" + pa + ext, nil
}

// mergeProfile profile 中的一级配置整体覆盖 base，Server 下按二级 key 覆盖
func mergeProfile(base, profile *viper.Viper) *viper.Viper {
	merged := viper.New()
	for k, v := range base.AllSettings() {
		merged.Set(k, v)
	}

	server, _ := profile.AllSettings()["server"].(map[string]any)
	for k, v := range server {
		if k == "profiles" {
			continue
		}
		merged.Set("server."+k, v)
	}
	for k, v := range profile.AllSettings() {
		if k != "server" {
			merged.Set(k, v)
		}
	}
	return merged
}

// expandEnvPlaceholders 展开所有字符串配置中的 ${VAR} / ${VAR:-default}
func expandEnvPlaceholders(vp *viper.Viper) {
	settings := vp.AllSettings()
	changed := false
	for _, key := range vp.AllKeys() {
		raw, ok := vp.Get(key).(string)
		if !ok || !strings.Contains(raw, "${") {
			continue
		}
		expanded := envPlaceholderRegex.ReplaceAllStringFunc(raw, func(match string) string {
			m := envPlaceholderRegex.FindStringSubmatch(match)
			if v := os.Getenv(m[1]); v != "" {
				return v
			}
			return m[2]
		})
		if expanded != raw {
			setNestedValue(settings, strings.Split(key, "."), expanded)
			changed = true
		}
	}
	if !changed {
		return
	}
	for k, v := range settings {
		vp.Set(k, v)
	}
}

func setNestedValue(m map[string]any, keys []string, value any) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}
