package xrecipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xhttp"
	"github.com/xiaoshicae/xactor/xlog"
	"github.com/xiaoshicae/xactor/xtrace"
	"github.com/xiaoshicae/xactor/xutil"
)

// RemoteActor 将 payload 以 json POST 给外部分析服务，响应必须是 json 对象
type RemoteActor struct {
	xactor.PerformanceTracker

	id            string
	name          string
	endpoint      string
	attempts      int
	retryInterval time.Duration
}

func NewRemoteActor(c *RemoteConfig) *RemoteActor {
	cp := *c
	c = configMergeDefault(&Config{Remote: []*RemoteConfig{&cp}}).Remote[0]
	return &RemoteActor{
		id:            c.ID,
		name:          c.Name,
		endpoint:      c.Endpoint,
		attempts:      c.Attempts,
		retryInterval: xutil.ToDuration(c.RetryInterval),
	}
}

func (a *RemoteActor) ID() string {
	return a.id
}

func (a *RemoteActor) Name() string {
	return a.name
}

func (a *RemoteActor) Handle(ctx context.Context, msg *xactor.Message) (any, error) {
	result, err := a.call(ctx, msg)
	if msg.Type != xactor.MessageTypeQuery {
		a.Observe(err == nil)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *RemoteActor) call(ctx context.Context, msg *xactor.Message) (map[string]any, error) {
	if _, err := payloadData(msg.Payload); err != nil {
		return nil, err
	}

	var result map[string]any
	err := xutil.Retry(ctx, func() error {
		resp, err := xhttp.RWithCtx(ctx).
			SetHeaders(xtrace.ForwardHeadersFromContext(ctx)).
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Actor-Message-Id", msg.ID).
			SetBody(msg.Payload).
			Post(a.endpoint)
		if err != nil {
			return fmt.Errorf("request %s failed, err=[%w]", a.endpoint, err)
		}
		if resp.IsError() {
			return fmt.Errorf("request %s failed, status=[%d], body=[%s]", a.endpoint, resp.StatusCode(), resp.String())
		}
		var m map[string]any
		if err := json.Unmarshal(resp.Body(), &m); err != nil || m == nil {
			return fmt.Errorf("response of %s is not a json object, body=[%s]", a.endpoint, resp.String())
		}
		result = m
		return nil
	}, a.attempts, a.retryInterval)
	if err != nil {
		xlog.Warn(ctx, "[xrecipe] remote actor=[%s] call failed, err=[%v]", a.id, err)
		return nil, err
	}
	return result, nil
}
