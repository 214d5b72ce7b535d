package xactor

import (
	"context"
	"sync"
)

// Actor 无状态的请求/响应处理单元，由 System 按 ID 路由消息
// Handle 可能被并发调用，实现需要自行保证并发安全
type Actor interface {
	ID() string
	Name() string
	Handle(ctx context.Context, msg *Message) (any, error)
}

// Scorer 可选能力，返回 actor 当前的表现分(0~1)，pipeline 用作结果置信度
type Scorer interface {
	Performance() float64
}

const (
	defaultPerformance = 1.0
	performanceAlpha   = 0.1
)

// PerformanceTracker 可嵌入的滚动表现分，指数移动平均，成功记 1 失败记 0
// 零值可用，初始分为 1
type PerformanceTracker struct {
	mu    sync.Mutex
	score float64
	count int64
}

func (p *PerformanceTracker) Performance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count == 0 {
		return defaultPerformance
	}
	return p.score
}

// Observe 记录一次处理结果
func (p *PerformanceTracker) Observe(success bool) {
	v := 0.0
	if success {
		v = 1.0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count == 0 {
		p.score = defaultPerformance
	}
	p.score = p.score*(1-performanceAlpha) + v*performanceAlpha
	p.count++
}

// HandlerFunc actor 的处理函数
type HandlerFunc func(ctx context.Context, msg *Message) (any, error)

// FuncActor 用函数快速构造 Actor
type FuncActor struct {
	PerformanceTracker

	id      string
	name    string
	handler HandlerFunc
}

// NewFuncActor name 为空时使用 id
func NewFuncActor(id, name string, handler HandlerFunc) *FuncActor {
	if name == "" {
		name = id
	}
	return &FuncActor{id: id, name: name, handler: handler}
}

func (a *FuncActor) ID() string {
	return a.id
}

func (a *FuncActor) Name() string {
	return a.name
}

func (a *FuncActor) Handle(ctx context.Context, msg *Message) (any, error) {
	result, err := a.handler(ctx, msg)
	if msg.Type != MessageTypeQuery {
		a.Observe(err == nil)
	}
	return result, err
}
