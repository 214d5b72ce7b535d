// Package xhttp 带 trace 透传的 http client
package xhttp

import (
	"github.com/xiaoshicae/xactor/xconfig"
	"github.com/xiaoshicae/xactor/xerror"
	"github.com/xiaoshicae/xactor/xhook"
	"github.com/xiaoshicae/xactor/xutil"
)

func init() {
	xhook.BeforeStart(initHttpClient, xhook.Order(20))
}

func initHttpClient() error {
	c := &Config{}
	if err := xconfig.UnmarshalConfig(XHttpConfigKey, c); err != nil {
		return xerror.New("xhttp", "init", err)
	}
	c = configMergeDefault(c)
	xutil.InfoIfEnableDebug("XActor initHttpClient got config: %s", xutil.ToJsonString(c))

	setDefaultClient(NewClient(c))
	return nil
}
